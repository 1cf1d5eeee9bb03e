package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"file-gateway/core/config"
	"file-gateway/core/logger"
	"file-gateway/core/response"
	"file-gateway/core/storage"
	"file-gateway/feature/files"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	filesBucket string
	filesName   string
	filesPrefix string
	filesLimit  int
)

// filesCmd groups the object commands
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage objects from the terminal",
	Long:  `Runs the same list, upload, download and delete operations the HTTP API exposes.`,
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objects of the bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFilesService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		objects, meta, err := svc.ListPage(cmd.Context(), filesPrefix, 0, filesLimit)
		if err != nil {
			return err
		}

		for _, o := range objects {
			fmt.Printf("%-10s  %-16s  %s\n", humanize.IBytes(uint64(o.Size)), humanize.Time(o.LastModified), o.Name)
		}
		fmt.Printf("\n%d of %d objects in %s\n", len(objects), meta.Count, svc.Bucket())
		return nil
	},
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFilesService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", args[0], err)
		}

		res, err := svc.Upload(cmd.Context(), files.UploadInput{
			Bucket:       filesBucket,
			Name:         filesName,
			OriginalName: filepath.Base(args[0]),
			Size:         st.Size(),
			Reader:       f,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Uploaded %s (%s, %s)\n", res.FileURL, humanize.IBytes(uint64(res.Size)), res.ContentType)
		return nil
	},
}

var filesGetCmd = &cobra.Command{
	Use:   "get <object> [dest]",
	Short: "Download an object to a local file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFilesService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		dest := path.Base(args[0])
		if len(args) == 2 {
			dest = args[1]
		}

		n, err := downloadTo(cmd.Context(), svc, args[0], dest)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s to %s (%s)\n", args[0], dest, humanize.IBytes(uint64(n)))
		return nil
	},
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <object>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFilesService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if !svc.Delete(cmd.Context(), filesBucket, args[0]) {
			return fmt.Errorf("failed to delete %s", args[0])
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var filesPurgeCmd = &cobra.Command{
	Use:   "purge <prefix>",
	Short: "Delete every object under a prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFilesService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		deleted, err := svc.DeletePrefix(cmd.Context(), filesBucket, args[0])
		fmt.Printf("Deleted %d objects under %s\n", deleted, args[0])
		return err
	},
}

var filesEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent upload and delete events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFilesService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if !svc.Recorder().Enabled() {
			fmt.Println("Audit database is not configured (DATABASE_ENABLED=true)")
			return nil
		}

		events, err := svc.Events(cmd.Context(), filesLimit)
		if err != nil {
			return err
		}
		for _, ev := range events {
			fmt.Printf("%-16s  %-6s  %s/%s\n", humanize.Time(ev.CreatedAt), ev.Action, ev.Bucket, ev.ObjectName)
		}
		return nil
	},
}

var filesCodesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print the error code registry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range response.Codes() {
			fmt.Printf("%-6s  %-7s  %s\n", c.Code, c.Level, c.Message)
		}
	},
}

func init() {
	filesListCmd.Flags().StringVar(&filesPrefix, "prefix", "", "only list objects under this prefix")
	filesListCmd.Flags().IntVar(&filesLimit, "limit", 0, "maximum number of objects (0 = all)")

	filesUploadCmd.Flags().StringVar(&filesName, "name", "", "object name (defaults to the file name)")
	filesUploadCmd.Flags().StringVar(&filesBucket, "bucket", "", "target bucket (defaults to the configured bucket)")

	filesGetCmd.Flags().StringVar(&filesBucket, "bucket", "", "bucket (defaults to the configured bucket)")
	filesDeleteCmd.Flags().StringVar(&filesBucket, "bucket", "", "bucket (defaults to the configured bucket)")
	filesPurgeCmd.Flags().StringVar(&filesBucket, "bucket", "", "bucket (defaults to the configured bucket)")
	filesEventsCmd.Flags().IntVar(&filesLimit, "limit", 50, "maximum number of events")

	filesCmd.AddCommand(filesListCmd, filesUploadCmd, filesGetCmd, filesDeleteCmd, filesPurgeCmd, filesEventsCmd, filesCodesCmd)
	RootCmd.AddCommand(filesCmd)
}

// newFilesService wires a files service from the configuration in the working directory.
func newFilesService() (*files.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	db := connectOptionalDB(cfg.Database, logg)
	svc := files.NewService(store, cfg.Storage, logg, db)
	if err := svc.Recorder().Migrate(); err != nil {
		logg.Warn("File event table migration failed", zap.Error(err))
	}
	return svc, logg, nil
}

func downloadTo(ctx context.Context, svc *files.Service, object, dest string) (int64, error) {
	obj, err := svc.GetFrom(ctx, filesBucket, object)
	if err != nil {
		return 0, err
	}
	defer obj.Body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	n, err := io.Copy(out, obj.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return n, nil
}
