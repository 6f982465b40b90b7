package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	png "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/scaleupinstitute/EuropeanScaleupMonitor/cmd/esmviewer/uihelpers"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/config"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/dataset"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/logging"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/scaleup"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config
	repo   *dataset.Repository

	table   *dataset.Table
	loadErr error

	// selection state, rebuilt from the widgets on every change
	selected []string // pick order
	metric   scaleup.Metric

	// widgets
	countryGroup *widget.CheckGroup
	metricSelect *widget.Select
	pillsLabel   *widget.Label
	fileLabel    *widget.Label

	tabs           *container.AppTabs
	trendImgCanvas *canvas.Image
	compImgCanvas  *canvas.Image
	compMessage    *widget.Label
	warningsLabel  *widget.Label

	previewHeader []string
	previewRows   [][]string
	previewTable  *widget.Table

	// panes swapped by refreshViews: exactly one visible
	chartsPane  fyne.CanvasObject
	previewPane fyne.CanvasObject
	errorPane   fyne.CanvasObject
	errorLabel  *widget.Label
}

func main() {
	var fileFlag, configFlag, logLevelFlag string
	flag.StringVar(&fileFlag, "file", "", "Path to the aggregate country spreadsheet (.xlsx)")
	flag.StringVar(&configFlag, "config", "", "Path to esm.yaml")
	flag.StringVar(&logLevelFlag, "loglevel", "", "Log level: debug|info|warn|error")
	flag.Parse()

	cfg, err := config.Load(configFlag)
	if err != nil {
		logging.Errorf("config: %v", err)
	}
	if logLevelFlag != "" {
		logging.SetLevelName(logLevelFlag)
	} else {
		logging.SetLevelName(cfg.LogLevel)
	}

	a := app.NewWithID("eu.scaleupinstitute.monitor")
	w := a.NewWindow("European Scaleup Monitor")
	w.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	path := fileFlag
	if path == "" {
		path = cfg.DatasetPath
	}
	state := &uiState{
		app:    a,
		window: w,
		cfg:    cfg,
		repo:   dataset.NewRepository(path),
		metric: defaultMetric(cfg.DefaultMetric),
	}

	buildUI(state)
	buildMenus(state)
	loadPrefs(state)
	loadAll(state)

	w.ShowAndRun()
}

func defaultMetric(label string) scaleup.Metric {
	if m, ok := scaleup.ByLabel(label); ok {
		return m
	}
	return scaleup.MetricScaler
}

func buildUI(state *uiState) {
	// selection controls
	state.pillsLabel = widget.NewLabel("")
	state.pillsLabel.Wrapping = fyne.TextWrapWord
	state.countryGroup = widget.NewCheckGroup(nil, func(current []string) {
		state.selected = mergeSelection(state.selected, current)
		savePrefs(state)
		refreshViews(state)
	})
	countryScroll := container.NewVScroll(state.countryGroup)
	countryScroll.SetMinSize(fyne.NewSize(210, 400))

	state.metricSelect = widget.NewSelect(scaleup.Labels(), func(label string) {
		if m, ok := scaleup.ByLabel(label); ok {
			state.metric = m
		}
		savePrefs(state)
		refreshViews(state)
	})
	state.metricSelect.Selected = state.metric.Label()

	state.fileLabel = widget.NewLabel(truncatePath(state.repo.Path(), 48))

	// sidebar: metric definitions plus about block
	defs := &strings.Builder{}
	for _, m := range scaleup.All() {
		fmt.Fprintf(defs, "%s: %s\n\n", m.Label(), m.Description())
	}
	defsLabel := widget.NewLabel(strings.TrimSpace(defs.String()))
	defsLabel.Wrapping = fyne.TextWrapWord
	about := widget.NewLabel("Benchmark countries in Europe on different growth metrics.")
	about.Wrapping = fyne.TextWrapWord
	siteURL, _ := url.Parse("https://scaleupinstitute.eu/")
	sidebar := container.NewVBox(
		widget.NewLabelWithStyle("European Scaleup Monitor", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewAccordion(widget.NewAccordionItem("Metric Definitions", defsLabel)),
		widget.NewSeparator(),
		about,
		widget.NewHyperlink("Visit Scaleup Institute", siteURL),
	)

	// chart canvases
	state.trendImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.trendImgCanvas.FillMode = canvas.ImageFillContain
	state.trendImgCanvas.SetMinSize(fyne.NewSize(900, 420))
	state.compImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.compImgCanvas.FillMode = canvas.ImageFillContain
	state.compImgCanvas.SetMinSize(fyne.NewSize(900, 360))

	state.compMessage = widget.NewLabel("")
	state.compMessage.Wrapping = fyne.TextWrapWord
	state.warningsLabel = widget.NewLabel("")
	state.warningsLabel.Wrapping = fyne.TextWrapWord

	trendTab := container.NewVScroll(container.NewVBox(state.trendImgCanvas))
	compTab := container.NewVScroll(container.NewVBox(
		state.compMessage,
		state.warningsLabel,
		state.compImgCanvas,
	))
	state.tabs = container.NewAppTabs(
		container.NewTabItem("Trend Analysis", trendTab),
		container.NewTabItem("Comparison", compTab),
	)
	state.tabs.SetTabLocation(container.TabLocationTop)
	state.tabs.OnSelected = func(*container.TabItem) {
		state.app.Preferences().SetInt("selectedTabIndex", state.tabs.SelectedIndex())
	}
	state.chartsPane = state.tabs

	// data preview for the zero-selection state
	state.previewTable = widget.NewTable(
		func() (int, int) {
			rows := len(state.previewRows) + 1
			cols := len(state.previewHeader)
			if cols < 1 {
				cols = 1
			}
			return rows, cols
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			if id.Col >= len(state.previewHeader) {
				lbl.SetText("")
				return
			}
			if id.Row == 0 {
				lbl.SetText(state.previewHeader[id.Col])
				return
			}
			rix := id.Row - 1
			if rix >= len(state.previewRows) || id.Col >= len(state.previewRows[rix]) {
				lbl.SetText("")
				return
			}
			lbl.SetText(state.previewRows[rix][id.Col])
		},
	)
	previewHint := widget.NewLabel("Please select at least one country to view the data. Preview of available data:")
	previewHint.Wrapping = fyne.TextWrapWord
	state.previewPane = container.NewBorder(previewHint, nil, nil, nil, state.previewTable)

	state.errorLabel = widget.NewLabel("")
	state.errorLabel.Wrapping = fyne.TextWrapWord
	state.errorPane = container.NewCenter(state.errorLabel)

	views := container.NewStack(state.chartsPane, state.previewPane, state.errorPane)

	top := container.NewVBox(
		container.NewHBox(
			widget.NewButton("Open…", func() { openFileDialog(state) }),
			widget.NewButton("Reload", func() { reload(state) }),
			widget.NewLabel("Metric:"), state.metricSelect,
			widget.NewLabel("File:"), state.fileLabel,
		),
		state.pillsLabel,
	)
	left := container.NewBorder(widget.NewLabel("Select countries to compare"), nil, nil, nil, countryScroll)
	content := container.NewBorder(top, nil, container.NewVBox(sidebar, widget.NewSeparator(), left), nil, views)
	state.window.SetContent(content)

	// redraw charts when the window width changes so they use the space
	if state.window.Canvas() != nil {
		prevW := int(state.window.Canvas().Size().Width)
		done := make(chan struct{})
		state.window.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := state.window.Canvas()
					if c == nil {
						continue
					}
					if cur := int(c.Size().Width); cur != prevW {
						prevW = cur
						fyne.Do(func() { refreshViews(state) })
					}
				}
			}
		}()
	}
}

// mergeSelection keeps previously picked countries in pick order and appends
// newly picked ones; the check group reports the current set in option order.
func mergeSelection(prev, current []string) []string {
	cur := make(map[string]bool, len(current))
	for _, c := range current {
		cur[c] = true
	}
	out := make([]string, 0, len(current))
	seen := make(map[string]bool, len(current))
	for _, c := range prev {
		if cur[c] && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	for _, c := range current {
		if !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	return out
}

func loadErrorMessage(err error) string {
	if errors.Is(err, dataset.ErrUnavailable) {
		return "Data file not found. Please ensure the aggregate country spreadsheet is present, or use File → Open… to locate it."
	}
	return fmt.Sprintf("Error loading data: %v", err)
}

// loadAll reads the dataset through the repository and rebuilds the widgets
// that depend on it. Load failures stop the render pass, not the process.
func loadAll(state *uiState) {
	table, err := state.repo.Table()
	state.table, state.loadErr = table, err
	if err != nil {
		logging.Errorf("load dataset: %v", err)
		state.errorLabel.SetText(loadErrorMessage(err))
		dialog.ShowError(err, state.window)
		refreshViews(state)
		return
	}
	state.fileLabel.SetText(truncatePath(state.repo.Path(), 48))

	countries := table.Countries()
	state.countryGroup.Options = countries
	// keep only countries that exist in the new table, preserving pick order
	kept := make([]string, 0, len(state.selected))
	for _, c := range state.selected {
		if table.HasCountry(c) {
			kept = append(kept, c)
		}
	}
	state.selected = kept
	state.countryGroup.Selected = kept
	state.countryGroup.Refresh()

	state.previewHeader = table.Columns()
	state.previewRows = table.Preview(5)
	state.previewTable.SetColumnWidth(0, 140)
	for i := 1; i < len(state.previewHeader); i++ {
		state.previewTable.SetColumnWidth(i, 150)
	}
	state.previewTable.Refresh()

	refreshViews(state)
}

func reload(state *uiState) {
	if _, err := state.repo.Reload(); err != nil {
		logging.Errorf("reload dataset: %v", err)
	}
	// failed loads are not cached, so loadAll re-reads and reports once
	loadAll(state)
}

// refreshViews is the one render pass: it swaps between the error, preview
// and chart panes and redraws both charts from the current selection.
func refreshViews(state *uiState) {
	if state.table == nil {
		state.chartsPane.Hide()
		state.previewPane.Hide()
		state.errorPane.Show()
		return
	}
	state.errorPane.Hide()

	if len(state.selected) == 0 {
		state.pillsLabel.SetText("")
	} else {
		state.pillsLabel.SetText("Selected: " + strings.Join(state.selected, " · "))
	}

	sel := scaleup.Selection{Countries: state.selected, Metric: state.metric}
	res := scaleup.Build(state.table, sel)
	if res.Preview {
		state.chartsPane.Hide()
		state.previewPane.Show()
		return
	}
	state.previewPane.Hide()
	state.chartsPane.Show()

	cw, chh := chartSize(state)
	state.trendImgCanvas.Image = renderTrendChart(res.Trend, cw, chh)
	state.trendImgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
	state.trendImgCanvas.Refresh()

	comp := res.Comparison
	switch comp.Outcome {
	case scaleup.ComparisonTooFewCountries:
		state.compMessage.SetText("Select at least two countries to view comparison.")
		state.compImgCanvas.Hide()
	case scaleup.ComparisonNoData:
		state.compMessage.SetText(fmt.Sprintf("Insufficient data for comparison in %d.", comp.Year))
		state.compImgCanvas.Hide()
	default:
		state.compMessage.SetText("")
		bh := uihelpers.ComputeComparisonHeight(len(comp.Rows))
		state.compImgCanvas.Image = renderComparisonChart(comp, cw, bh)
		state.compImgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(bh)))
		state.compImgCanvas.Show()
		state.compImgCanvas.Refresh()
	}
	state.warningsLabel.SetText(strings.Join(comp.Warnings, "\n"))
}

// chartSize derives the chart pixel size from the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartDimensions(1100)
	}
	sz := state.window.Canvas().Size()
	w := int(sz.Width*0.72) - 12 // leave room for the sidebar column
	return uihelpers.ComputeChartDimensions(w)
}

func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 48), func() {
			state.repo.SetPath(f)
			savePrefs(state)
			loadAll(state)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { reload(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Trend Chart…", func() { exportChartPNG(state, state.trendImgCanvas, "trend_chart.png") }),
		fyne.NewMenuItem("Export Comparison Chart…", func() { exportChartPNG(state, state.compImgCanvas, "comparison_chart.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { reload(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { reload(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.repo.SetPath(rc.URI().Path())
		addRecentFile(state, state.repo.Path())
		savePrefs(state)
		loadAll(state)
	}, state.window)
	d.Show()
}

func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil || img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.repo.Path())
	prefs.SetString("metric", state.metric.Label())
	prefs.SetString("countries", strings.Join(state.selected, "\n"))
}

func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if f := prefs.StringWithFallback("lastFile", ""); f != "" {
		state.repo.SetPath(f)
		state.fileLabel.SetText(truncatePath(f, 48))
	}
	if label := prefs.StringWithFallback("metric", ""); label != "" {
		if m, ok := scaleup.ByLabel(label); ok {
			state.metric = m
			state.metricSelect.Selected = label
		}
	}
	if raw := prefs.StringWithFallback("countries", ""); raw != "" {
		state.selected = strings.Split(raw, "\n")
	}
	if idx := prefs.IntWithFallback("selectedTabIndex", 0); idx >= 0 && idx < len(state.tabs.Items) {
		state.tabs.SelectIndex(idx)
	}
}

func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
