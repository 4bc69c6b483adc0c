package app

import (
	"context"
	"errors"
	"io"

	"goexplore/adapters/excel"
	"goexplore/domain/chart"
	"goexplore/domain/core"
	"goexplore/internal"
	"goexplore/internal/analysis"
	apperrors "goexplore/internal/errors"
	"goexplore/internal/missing"
	"goexplore/internal/report"
	"goexplore/internal/validation"
	"goexplore/internal/visualize"
	"goexplore/ports"
)

const banner = "Academic Research Data Analysis Tool"

var mainMenu = []string{
	"1. Histogram",
	"2. Scatter Plot",
	"3. Boxplot",
	"4. Line Plot",
	"5. Bar Chart",
	"6. Pie Chart",
	"7. Correlation Matrix",
	"8. Statistical Analysis",
	"9. Handle Missing Data",
	"10. Exit",
}

var statsMenu = []string{
	"1. Descriptive summary",
	"2. Two-sample t-test",
	"3. Simple linear regression",
	"4. Export summary to JSON",
	"5. Return to main menu",
}

// Deps are the collaborators an Explorer talks to
type Deps struct {
	Console  ports.Console
	Renderer ports.ChartRenderer
	Logger   *internal.Logger

	// ReaderOptions are passed to the table loader
	ReaderOptions []excel.Option
	// HistogramBins fixes the histogram bin count; zero picks one from the data
	HistogramBins int
	// EqualVariance selects Student's t-test; false selects Welch's
	EqualVariance bool
}

// Explorer drives one interactive session: load a file, then serve the
// operation menu until the user exits or input ends.
type Explorer struct {
	console    ports.Console
	printer    *report.Printer
	dispatcher *visualize.Dispatcher
	logger     *internal.Logger
	readerOpts []excel.Option
	equalVar   bool
}

// NewExplorer wires an explorer from its dependencies
func NewExplorer(deps Deps) *Explorer {
	logger := deps.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Explorer{
		console:    deps.Console,
		printer:    report.NewPrinter(deps.Console.Writer()),
		dispatcher: visualize.NewDispatcher(deps.Renderer, visualize.WithBins(deps.HistogramBins), visualize.WithLogger(logger)),
		logger:     logger,
		readerOpts: append([]excel.Option{excel.WithLogger(logger)}, deps.ReaderOptions...),
		equalVar:   deps.EqualVariance,
	}
}

// Run starts a session and serves the menu. An invalid path is reported on
// the console and ends the run without error. Load failures are returned.
// End of input ends the run without error.
func (e *Explorer) Run(ctx context.Context) error {
	session, err := e.Start()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if session == nil {
		return nil
	}

	err = e.Loop(ctx, session)
	if errors.Is(err, io.EOF) {
		e.logger.Info("[Explorer] input closed, ending session")
		return nil
	}
	return err
}

// Start prints the banner, asks for a data file and loads it. It returns a
// nil session when the path fails validation. A file that is not a readable
// table comes back as an INVALID_INPUT error, other read failures as IO_ERROR.
func (e *Explorer) Start() (*Session, error) {
	e.console.WriteLine(banner)
	e.console.WriteLine("")

	path, err := e.console.ReadLine("Enter the path to your data file (CSV/Excel): ")
	if err != nil {
		return nil, err
	}

	if res := validation.ValidateFilePath(path); !res.OK {
		e.logger.Info("[Explorer] rejected path %q: %v", path, res.Err)
		e.console.WriteError(res.Message)
		return nil, nil
	}

	table, err := excel.LoadData(path, e.readerOpts...)
	if err != nil {
		if core.IsStartupError(err) {
			e.logger.Error("[Explorer] cannot load %s: %v", path, err)
			return nil, apperrors.WithCode(apperrors.CodeInvalidInput, apperrors.Wrapf(err, "cannot load %s", path))
		}
		return nil, apperrors.IOError("read", path, err)
	}

	session := NewSession(path, table)
	e.logger = e.logger.With("session_id", session.ID.String())
	e.logger.Info("[Explorer] loaded %s (%d rows, %d columns)", path, table.NumRows(), table.NumColumns())

	e.console.WriteLine("")
	e.printer.Info(analysis.Info(table))
	e.console.WriteLine("")
	e.printer.Summary(analysis.Describe(table))
	return session, nil
}

// Loop serves the operation menu until Exit is chosen. Failed actions are
// reported and the loop continues; only console errors, such as io.EOF, end it early.
func (e *Explorer) Loop(ctx context.Context, s *Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := e.menu("Main Menu:", mainMenu, "Choose an option (1-10): ")
		if err != nil {
			return err
		}

		done, err := e.dispatch(s, choice)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// menu prints a numbered menu and returns a valid choice
func (e *Explorer) menu(title string, lines []string, prompt string) (string, error) {
	e.console.WriteLine("")
	e.console.WriteLine(title)
	for _, line := range lines {
		e.console.WriteLine(line)
	}

	raw, err := e.console.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return validation.ValidateMenuChoice(raw, validation.Options(len(lines)), e.console)
}

func (e *Explorer) dispatch(s *Session, choice string) (bool, error) {
	e.logger.Debug("[Explorer] menu choice %s", choice)

	switch choice {
	case "1":
		return false, e.chartX(s, chart.KindHistogram, "Enter the column name for the x-axis: ")
	case "2":
		return false, e.chartXY(s, chart.KindScatter, false)
	case "3":
		return false, e.chartXY(s, chart.KindBoxplot, true)
	case "4":
		return false, e.chartXY(s, chart.KindLine, false)
	case "5":
		return false, e.chartXY(s, chart.KindBar, true)
	case "6":
		return false, e.chartX(s, chart.KindPie, "Enter the column name for the categorical data: ")
	case "7":
		e.correlation(s)
		return false, nil
	case "8":
		return false, e.statistics(s)
	case "9":
		return false, missing.NewEditor(e.console, e.logger).Run(s.Table)
	case "10":
		e.console.WriteLine("Exiting the tool. Goodbye!")
		return true, nil
	}
	return false, nil
}
