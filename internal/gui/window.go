package gui

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"playstore_analyzer/internal/domain"
	"playstore_analyzer/internal/relay"
)

const (
	windowTitle  = "Google Play Store Review Analyzer"
	windowWidth  = 800
	windowHeight = 600
)

// Runner is the analysis entry point the window triggers.
type Runner interface {
	Run(ctx context.Context, appID string, sink relay.Sink) (*domain.AnalysisRun, error)
}

// MainWindow is the single-form frontend: app-id entry, trigger
// button, scrolling log, progress bar and status line. All widget
// mutation happens on the drain goroutine inside fyne.Do; the worker
// only ever touches the queue.
type MainWindow struct {
	window fyne.Window
	runner Runner
	logger *slog.Logger

	appIDEntry    *widget.Entry
	analyzeButton *widget.Button
	logView       *widget.Entry
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
}

func NewMainWindow(fyneApp fyne.App, runner Runner, logger *slog.Logger) *MainWindow {
	window := fyneApp.NewWindow(windowTitle)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	mw := &MainWindow{
		window: window,
		runner: runner,
		logger: logger.With("component", "gui"),
	}
	mw.buildContent()

	return mw
}

func (mw *MainWindow) buildContent() {
	mw.appIDEntry = widget.NewEntry()
	mw.appIDEntry.SetText("com.whatsapp")
	mw.appIDEntry.SetPlaceHolder("Enter App Package Name")

	mw.analyzeButton = widget.NewButton("Analyze App", mw.startAnalysis)
	mw.analyzeButton.Importance = widget.HighImportance

	mw.logView = widget.NewMultiLineEntry()
	mw.logView.Wrapping = fyne.TextWrapWord

	mw.progressBar = widget.NewProgressBar()
	mw.progressBar.Max = 100

	mw.statusLabel = widget.NewLabel("Ready")

	top := container.NewBorder(nil, nil,
		widget.NewLabel("Enter App Package Name:"),
		mw.analyzeButton,
		mw.appIDEntry,
	)
	bottom := container.NewVBox(mw.progressBar, mw.statusLabel)

	mw.window.SetContent(container.NewBorder(top, bottom, nil, nil,
		container.NewScroll(mw.logView),
	))
}

func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}

// startAnalysis kicks off one run. The button stays disabled until
// the run's enable-trigger message arrives, so only one run is ever
// in flight.
func (mw *MainWindow) startAnalysis() {
	appID := mw.appIDEntry.Text

	mw.logView.SetText("")
	mw.analyzeButton.Disable()
	mw.statusLabel.SetText("Analyzing...")
	mw.progressBar.SetValue(0)

	queue := relay.NewQueue()

	go func() {
		queue.Drain(context.Background(), func(msg relay.Message) {
			fyne.Do(func() {
				mw.apply(msg)
			})
		})
	}()

	go func() {
		defer queue.Close()
		if _, err := mw.runner.Run(context.Background(), appID, queue); err != nil {
			mw.logger.Error("analysis failed", "app_id", appID, "error", err)
		}
	}()
}

// apply mutates widgets for one drained message. Runs inside fyne.Do.
func (mw *MainWindow) apply(msg relay.Message) {
	switch msg.Kind {
	case relay.KindText:
		mw.appendLog(msg.Text)
	case relay.KindProgress:
		mw.progressBar.SetValue(float64(msg.Progress))
	case relay.KindStatus:
		mw.statusLabel.SetText(msg.Text)
	case relay.KindError:
		dialog.ShowError(errors.New(msg.Text), mw.window)
	case relay.KindSuccess:
		dialog.ShowInformation("Success", msg.Text, mw.window)
	case relay.KindEnableTrigger:
		mw.analyzeButton.Enable()
	}
}

func (mw *MainWindow) appendLog(line string) {
	mw.logView.SetText(mw.logView.Text + line + "\n")
}
