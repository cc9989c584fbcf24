// Command atrium inspects cardiac segmentation datasets laid out as
// root/<subject>/{data,masks}/*.npy.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	debug     bool
	extension string
	cacheSize int
	minio     minioFlags
}

type minioFlags struct {
	endpoint  string
	accessKey string
	secretKey string
	secure    bool
	bucket    string
	prefix    string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "atrium",
		Short:         "inspect cardiac MRI segmentation datasets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&g.debug, "debug", false, "log at debug level")
	pf.StringVar(&g.extension, "ext", ".npy", "extension of slice files under <subject>/data")
	pf.IntVar(&g.cacheSize, "cache", 0, "number of decoded slice pairs to keep in memory")
	pf.StringVar(&g.minio.endpoint, "minio-endpoint", "", "read from this S3-compatible endpoint instead of the local disk")
	pf.StringVar(&g.minio.accessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "access key (default $MINIO_ACCESS_KEY)")
	pf.StringVar(&g.minio.secretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "secret key (default $MINIO_SECRET_KEY)")
	pf.BoolVar(&g.minio.secure, "minio-secure", true, "use TLS")
	pf.StringVar(&g.minio.bucket, "bucket", "", "bucket holding the dataset")
	pf.StringVar(&g.minio.prefix, "prefix", "", "key prefix prepended to ROOT")

	root.AddCommand(sizeCmd(g), validateCmd(g), sampleCmd(g))
	return root
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
