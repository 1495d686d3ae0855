package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/logger"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/pipeline"
	reportpkg "github.com/yorozuya-cybersecurity/ssh-audit-report/internal/report"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/severity"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/pkg/utils"
)

const defaultPrefix = "SSH_Auditing_Results"

var knownFormats = []string{"xlsx", "html", "pdf"}

func newReportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Build a severity-colored spreadsheet from a directory of ssh-audit JSON files",
		Example: "ssh-audit-report report --dir ./audits --format xlsx,html",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, v)
		},
	}

	cmd.Flags().StringP("dir", "d", "", "Directory containing the ssh-audit JSON files")
	cmd.Flags().String("format", "xlsx", "Output formats: xlsx,html,pdf (xlsx is always written)")
	cmd.Flags().String("overrides", "", "YAML file forcing a severity for specific finding texts")
	cmd.Flags().String("prefix", defaultPrefix, "Report file name prefix")
	cmd.Flags().Bool("strict", false, "Fail instead of writing an empty report when no document could be read")

	_ = v.BindPFlag("report.dir", cmd.Flags().Lookup("dir"))
	_ = v.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	_ = v.BindPFlag("report.overrides", cmd.Flags().Lookup("overrides"))
	_ = v.BindPFlag("report.prefix", cmd.Flags().Lookup("prefix"))
	_ = v.BindPFlag("report.strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runReport(cmd *cobra.Command, v *viper.Viper) error {
	dir := v.GetString("report.dir")
	if dir == "" {
		return errors.New("please provide --dir pointing to the directory of ssh-audit JSON files")
	}

	formats, err := parseFormats(v.GetString("report.format"))
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	log := logger.New(level, cmd.ErrOrStderr())

	overrides, err := severity.LoadOverrides(v.GetString("report.overrides"))
	if err != nil {
		return err
	}
	if len(overrides) > 0 {
		log.WithField("overrides", len(overrides)).Debug("Loaded severity overrides")
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Dir:        dir,
		Classifier: severity.New(overrides),
		Log:        log,
		Strict:     v.GetBool("report.strict"),
	})
	if err != nil {
		return err
	}

	outDir := v.GetString("output")
	if err := utils.EnsureDir(outDir); err != nil {
		return err
	}
	prefix := v.GetString("report.prefix")
	if prefix == "" {
		prefix = defaultPrefix
	}
	now := time.Now()
	out := cmd.OutOrStdout()

	xlsxPath, err := reportpkg.GenerateXLSX(res.Findings, res.Summary, utils.ReportPath(outDir, prefix, "xlsx", now))
	if err != nil {
		return err
	}

	if slices.Contains(formats, "html") || slices.Contains(formats, "pdf") {
		htmlPath, err := reportpkg.GenerateHTML(res.Findings, res.Summary, utils.ReportPath(outDir, prefix, "html", now))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "HTML report: %s\n", htmlPath)

		// PDF is best effort; the workbook is the deliverable
		if slices.Contains(formats, "pdf") {
			pdfPath, err := reportpkg.GeneratePDF(cmd.Context(), htmlPath)
			if err != nil {
				log.WithError(err).Warn("PDF generation failed")
			} else {
				fmt.Fprintf(out, "PDF report: %s\n", pdfPath)
			}
		}
	}

	fmt.Fprintf(out, "Report generated successfully: %s\n", xlsxPath)
	return nil
}

func parseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		if !slices.Contains(knownFormats, f) {
			return nil, fmt.Errorf("unknown format %q (supported: %s)", f, strings.Join(knownFormats, ","))
		}
		formats = append(formats, f)
	}
	return formats, nil
}
