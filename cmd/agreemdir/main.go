// Command agreemdir processes grant agreement PDFs: it extracts the case
// number, amount, date and purpose from each PDF in a directory, creates a
// per-agreement folder, fills the bank letter template and moves the PDF in.
// It also exposes the template engine directly through the fill and inspect
// commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/DenisZol/Agreem-make-dir/internal/batch"
	"github.com/DenisZol/Agreem-make-dir/pkg/docfill"
)

const version = "1.0.0"

var cli struct {
	LogLevel string `help:"Log level (debug, info, warn, error, off)" enum:"debug,info,warn,error,off" default:"info"`

	Run     RunCmd     `cmd:"" help:"Process every agreement PDF in a directory"`
	Fill    FillCmd    `cmd:"" help:"Fill a DOCX template with a token map"`
	Inspect InspectCmd `cmd:"" help:"List {{...}} markers in a DOCX, or run an XPath query against it"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RunCmd runs the batch pipeline over a directory of agreement PDFs.
type RunCmd struct {
	Dir      string `arg:"" help:"Directory with agreement PDFs" type:"existingdir"`
	Template string `required:"" help:"Letter template (DOCX)" type:"existingfile"`
	Ledger   string `help:"Ledger database path (default: <dir>/processed.db)" type:"path"`
	DryRun   bool   `help:"Report what would happen without writing anything"`
}

func (c *RunCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner, err := batch.New(batch.Options{
		SourceDir:  c.Dir,
		Template:   c.Template,
		LedgerPath: c.Ledger,
		DryRun:     c.DryRun,
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Processed: %d\n", summary.Processed)
	fmt.Printf("Skipped:   %d\n", summary.Skipped)
	fmt.Printf("Failed:    %d\n", summary.Failed)

	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}
	return nil
}

// FillCmd fills one template with a token map from a JSON file.
type FillCmd struct {
	Template string `arg:"" help:"Template DOCX path" type:"existingfile"`
	Tokens   string `arg:"" help:"Token map JSON path" type:"existingfile"`
	Out      string `arg:"" help:"Output DOCX path" type:"path"`
}

func (c *FillCmd) Run() error {
	tokens, err := docfill.LoadTokenMap(c.Tokens)
	if err != nil {
		return err
	}

	doc, err := docfill.OpenFile(c.Template)
	if err != nil {
		return err
	}
	if err := doc.ReplaceAll(tokens); err != nil {
		return err
	}
	if err := doc.Save(c.Out); err != nil {
		return err
	}

	fmt.Printf("Created: %s\n", c.Out)
	return nil
}

// InspectCmd lists the markers a template carries, or runs an XPath query
// against its main document part.
type InspectCmd struct {
	Template string `arg:"" help:"DOCX path" type:"existingfile"`
	XPath    string `help:"XPath expression to evaluate instead of listing markers"`
}

func (c *InspectCmd) Run() error {
	doc, err := docfill.OpenFile(c.Template)
	if err != nil {
		return err
	}

	if c.XPath != "" {
		results, err := doc.Query(c.XPath)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Println(r)
		}
		return nil
	}

	tokens, err := doc.Tokens()
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		fmt.Println("No markers found.")
		return nil
	}
	for _, t := range tokens {
		fmt.Println(t)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("agreemdir %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("agreemdir"),
		kong.Description("Agreement folder and bank letter generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	config := docfill.ConfigFromEnvironment()
	config.LogLevel = cli.LogLevel
	docfill.SetGlobalConfig(config)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
