package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cisan/caripiutang/pkg/mask"
	"github.com/cisan/caripiutang/pkg/matcher"
	"github.com/cisan/caripiutang/pkg/models"
	"github.com/cisan/caripiutang/pkg/submission"
)

// Service is the part of the matcher client the form uses.
type Service interface {
	Process(ctx context.Context, sub models.Submission) (*models.Result, error)
	Download(ctx context.Context, location, destDir string) (string, error)
}

type focusArea int

const (
	focusFile focusArea = iota
	focusTargets
	focusTolerance
	focusSubmit
	focusCount
)

const (
	msgMissingInput = "Silakan pilih file dan isi target nominal."
	usageText       = "Cara pakai: 1. Pilih file Excel (.xlsx). 2. Isi target, bisa lebih dari satu, pisahkan dengan koma. 3. Isi toleransi (opsional). 4. Proses, lalu unduh hasilnya."
)

// Options configures the form.
type Options struct {
	Settings  *models.Settings
	Service   Service
	Logger    *zap.Logger
	Clipboard Clipboard

	// FilePath preselects the workbook.
	FilePath string
}

// App is the invoice matching form.
type App struct {
	settings *models.Settings
	service  Service
	log      *zap.Logger
	keys     AppKeyMap
	printer  *message.Printer

	file      *FileField
	targets   TargetInput
	tolerance *ToleranceField
	focus     focusArea

	spinner spinner.Model
	help    help.Model
	confirm *ConfirmationModel

	loading   bool
	result    *models.Result
	summary   string
	errMsg    string
	statusMsg string

	width  int
	height int
}

type processDoneMsg struct {
	result  *models.Result
	err     error
	targets int
	total   decimal.Decimal
}

type downloadDoneMsg struct {
	path string
	err  error
}

// StatusMsg replaces the status bar text.
type StatusMsg string

func NewApp(opts Options) *App {
	settings := opts.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	a := &App{
		settings:  settings,
		service:   opts.Service,
		log:       log.Named("tui"),
		keys:      DefaultAppKeyMap(),
		printer:   message.NewPrinter(language.Indonesian),
		file:      NewFileField(),
		targets:   NewTargetInput(settings.Form, clip),
		tolerance: NewToleranceField(settings.Form.GroupingRune(), clip),
		spinner:   sp,
		help:      help.New(),
		confirm:   NewConfirmation(),
	}
	if opts.FilePath != "" {
		a.file.SetPath(opts.FilePath)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return a.file.Focus()
}

// CanSubmit reports whether the form holds a valid file and a positive amount.
func (a *App) CanSubmit() bool {
	return !a.loading && a.service != nil && mask.SubmitEnabled(a.targets.Value(), a.file.Attached())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case caretRestoreMsg:
		a.targets.Update(msg)
		a.tolerance.Update(msg)
		return a, nil

	case pasteMsg:
		if msg.field == toleranceFieldID {
			return a, a.tolerance.Update(msg)
		}
		return a, a.targets.Update(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case processDoneMsg:
		a.handleProcessed(msg)
		return a, nil

	case downloadDoneMsg:
		if msg.err != nil {
			a.log.Warn("download failed", zap.Error(msg.err))
			a.statusMsg = "Gagal mengunduh: " + describeError(msg.err)
		} else {
			a.statusMsg = "✓ Hasil disimpan di " + msg.path
		}
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	if a.focus == focusFile {
		return a, a.file.Update(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}
	if a.loading {
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Next):
		return a.setFocus((a.focus + 1) % focusCount)
	case key.Matches(msg, a.keys.Prev):
		return a.setFocus((a.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, a.keys.Submit):
		return a.submit()
	case key.Matches(msg, a.keys.ClearFile):
		a.file.Clear()
		return nil
	case key.Matches(msg, a.keys.Reset):
		a.confirm.Show(ConfirmationConfig{Message: "Kosongkan semua isian?", Destructive: true},
			func() tea.Cmd {
				a.resetForm()
				a.result = nil
				a.errMsg = ""
				return func() tea.Msg { return StatusMsg("Form dikosongkan") }
			}, nil)
		return nil
	case key.Matches(msg, a.keys.Download):
		return a.download()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	}

	switch a.focus {
	case focusFile:
		if msg.Type == tea.KeyEnter {
			return a.setFocus(focusTargets)
		}
		return a.file.Update(msg)
	case focusTargets:
		return a.targets.Update(msg)
	case focusTolerance:
		if msg.Type == tea.KeyEnter {
			return a.setFocus(focusSubmit)
		}
		return a.tolerance.Update(msg)
	case focusSubmit:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			return a.submit()
		}
	}
	return nil
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	if f == focusFile {
		return a.file.Focus()
	}
	a.file.Blur()
	return nil
}

func (a *App) submit() tea.Cmd {
	a.errMsg = ""
	a.result = nil
	a.summary = ""
	if !a.CanSubmit() {
		if !a.loading {
			a.errMsg = msgMissingInput
		}
		return nil
	}

	targets := submission.Targets(a.targets.Normalized())
	sub := models.Submission{
		FilePath:    a.file.Path(),
		Targets:     targets,
		Tolerance:   submission.Tolerance(a.tolerance.Value(), a.settings.Form.DefaultTolerance),
		MaxInvoices: a.settings.Form.MaxInvoices,
	}
	total := submission.Total(targets)

	a.loading = true
	a.log.Info("submitting",
		zap.String("file", sub.FilePath),
		zap.Int("targets", len(targets)),
		zap.Int("tolerance", sub.Tolerance),
	)

	service := a.service
	process := func() tea.Msg {
		res, err := service.Process(context.Background(), sub)
		return processDoneMsg{result: res, err: err, targets: len(targets), total: total}
	}
	return tea.Batch(a.spinner.Tick, process)
}

func (a *App) handleProcessed(msg processDoneMsg) {
	a.loading = false
	if msg.err != nil {
		a.log.Warn("process failed", zap.Error(msg.err))
		a.errMsg = describeError(msg.err)
	} else {
		a.result = msg.result
		a.summary = a.printer.Sprintf("%d target, total Rp %s", msg.targets, mask.FormatDigits(msg.total.String()))
	}
	a.resetForm()
}

func (a *App) resetForm() {
	a.file.Clear()
	a.targets.Reset()
	a.tolerance.Reset()
}

func (a *App) download() tea.Cmd {
	if a.result == nil || !a.result.Found || a.result.DownloadURL == "" || a.service == nil {
		return nil
	}
	location := a.result.DownloadURL
	dir := a.settings.Form.DownloadDir
	service := a.service
	a.statusMsg = "Mengunduh..."
	return func() tea.Msg {
		path, err := service.Download(context.Background(), location, dir)
		return downloadDoneMsg{path: path, err: err}
	}
}

// describeError turns service errors into the message shown under the form.
func describeError(err error) string {
	var apiErr *matcher.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Detail
	case errors.Is(err, matcher.ErrFileTooLarge):
		return "File terlalu besar (maksimal 10 MiB)."
	case errors.Is(err, matcher.ErrUnsupportedFile):
		return "Hanya file .xlsx yang didukung."
	case errors.Is(err, matcher.ErrNoTargets):
		return "Target harus berupa angka positif."
	}
	return err.Error()
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	fieldWidth := a.width - 4
	if fieldWidth > 72 {
		fieldWidth = 72
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Cari Piutang"))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("Cari kombinasi invoice yang cocok dengan target pembayaran."))
	b.WriteString("\n\n")

	b.WriteString(GetActiveHeaderStyle(a.focus == focusFile).Render("File Excel (.xlsx)"))
	b.WriteString("\n")
	b.WriteString(a.file.View(fieldWidth))
	if status := a.file.Status(); status != "" {
		style := DescriptionStyle
		if !a.file.Attached() {
			style = ErrorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(status))
	}
	b.WriteString("\n\n")

	b.WriteString(GetActiveHeaderStyle(a.focus == focusTargets).Render("Target nominal"))
	b.WriteString("\n")
	b.WriteString(a.targets.View(fieldWidth, a.focus == focusTargets))
	b.WriteString("\n\n")

	b.WriteString(GetActiveHeaderStyle(a.focus == focusTolerance).Render("Toleransi (opsional)"))
	b.WriteString("\n")
	b.WriteString(a.tolerance.View(fieldWidth, a.focus == focusTolerance))
	b.WriteString("\n\n")

	b.WriteString(a.renderButton())
	b.WriteString("\n")

	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(wordwrap.String(a.errMsg, fieldWidth)))
		b.WriteString("\n")
	}
	if a.result != nil {
		b.WriteString("\n")
		b.WriteString(a.renderResult(fieldWidth))
		b.WriteString("\n")
	}
	if a.confirm.Active() {
		b.WriteString("\n")
		b.WriteString(a.confirm.ViewWithWidth(fieldWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render(wordwrap.String(usageText, fieldWidth)))
	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.keys))

	content := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, StatusBarStyle.Render(a.statusMsg))
	}
	return content
}

func (a *App) renderButton() string {
	if a.loading {
		return a.spinner.View() + " Memproses..."
	}
	label := "Proses file"
	if a.focus == focusSubmit {
		label = "› " + label + " ‹"
	}
	if !a.CanSubmit() {
		return ButtonDisabledStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

func (a *App) renderResult(width int) string {
	var lines []string
	if a.result.Found {
		lines = append(lines,
			SuccessStyle.Render(a.printer.Sprintf("Ditemukan %d baris cocok.", a.result.TotalRows)))
		if a.result.DownloadURL != "" {
			lines = append(lines, fmt.Sprintf("Unduh file hasil: %s (%s)",
				resolveLocation(a.service, a.result.DownloadURL), a.keys.Download.Help().Key))
		}
	} else {
		lines = append(lines, "Tidak ada kombinasi yang cocok.")
	}
	if a.summary != "" {
		lines = append(lines, DescriptionStyle.Render(a.summary))
	}
	return wordwrap.String(strings.Join(lines, "\n"), width)
}

func resolveLocation(s Service, location string) string {
	if r, ok := s.(interface{ ResolveURL(string) string }); ok {
		return r.ResolveURL(location)
	}
	return location
}
