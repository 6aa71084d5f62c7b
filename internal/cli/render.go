package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kevin-luna/cursito-api/internal/dto"
	"github.com/kevin-luna/cursito-api/internal/models"
)

type renderOptions struct {
	workerID string
	courseID string
	format   string
	output   string
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <kind>",
		Short: "Compile one report to a file",
		Long: "Compile one report to a file. Kinds: " + kindList() + ".\n" +
			"The output file defaults to the name the API would send; use -o - for stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession()
			if err != nil {
				return err
			}
			defer sess.close()

			file, err := sess.reports.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := opts.output
			if out == "" {
				out = file.Filename
			}
			return writeOut(cmd, out, file.Content)
		},
	}
	cmd.Flags().StringVar(&opts.workerID, "worker", "", "worker id")
	cmd.Flags().StringVar(&opts.courseID, "course", "", "course id")
	cmd.Flags().StringVar(&opts.format, "format", string(models.ReportFormatPDF), "pdf or csv (csv only for attendance)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path")
	return cmd
}

// request checks the kind locally so typos fail before any connection is opened.
func (o *renderOptions) request(kind string) (dto.ReportRequest, error) {
	k := models.ReportKind(strings.ToLower(kind))
	for _, known := range models.ReportKinds() {
		if k == known {
			return dto.ReportRequest{
				Kind:     k,
				WorkerID: o.workerID,
				CourseID: o.courseID,
				Format:   models.ReportFormat(strings.ToLower(o.format)),
			}, nil
		}
	}
	return dto.ReportRequest{}, fmt.Errorf("unknown report kind %q (want one of %s)", kind, kindList())
}

func kindList() string {
	kinds := models.ReportKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
