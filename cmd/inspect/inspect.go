package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/sync/errgroup"

	"github.com/kevmo314/cameractrls"
)

// rowInfo ties a control to its place in the visible list so listener
// updates can repaint a single row.
type rowInfo struct {
	index    int
	category string
}

func main() {
	device := flag.String("d", "/dev/video0", "path to the video device")
	flag.Parse()

	var warns cameractrls.Warnings
	cam, err := cameractrls.Open(cameractrls.Config{Device: *device}, &warns)
	if err != nil {
		panic(err)
	}
	defer cam.Close()

	app := tview.NewApplication()

	pagesList := tview.NewList().ShowSecondaryText(false)
	pagesList.SetBorder(true).SetTitle("Pages")

	controlsList := tview.NewList()
	controlsList.SetBorder(true).SetTitle("Controls")

	editor := tview.NewFlex().SetDirection(tview.FlexRow)
	editor.SetBorder(true).SetTitle("Value")

	logText := tview.NewTextView()
	logText.SetMaxLines(10).SetBorder(true).SetTitle("Log")

	log.SetOutput(logText)
	log.SetFlags(0)
	for _, w := range warns {
		log.Printf("warning: %s", w)
	}

	// Writes run off the UI goroutine; the UI only enqueues batches.
	applyCh := make(chan cameractrls.Batch, 8)
	rows := map[cameractrls.Control]rowInfo{}

	refreshRow := func(ctrl cameractrls.Control) {
		if r, ok := rows[ctrl]; ok {
			title, second := rowTexts(r.category, ctrl)
			controlsList.SetItemText(r.index, title, second)
		}
	}
	refreshVisible := func() {
		for ctrl := range rows {
			refreshRow(ctrl)
		}
	}

	openEditor := func(ctrl cameractrls.Control) {
		editor.Clear()
		meta := ctrl.Meta()
		assign := func(value string) {
			applyCh <- cameractrls.Batch{{Name: meta.ID, Value: value}}
		}
		var entries []cameractrls.MenuEntry
		switch c := ctrl.(type) {
		case *cameractrls.MenuControl:
			entries = c.Entries
		case *cameractrls.ButtonControl:
			entries = c.Entries
		case *cameractrls.BooleanControl:
			entries = []cameractrls.MenuEntry{
				{ID: "off", Name: "off"},
				{ID: "on", Name: "on"},
			}
		case *cameractrls.IntegerControl:
			input := tview.NewInputField()
			input.SetLabel(fmt.Sprintf("%s [%d..%d]: ", meta.Name, c.Min, c.Max)).
				SetText(strconv.Itoa(int(ctrl.State().Value))).
				SetAcceptanceFunc(tview.InputFieldInteger).
				SetDoneFunc(func(key tcell.Key) {
					if key == tcell.KeyEnter {
						assign(input.GetText())
					}
					app.SetFocus(controlsList)
				})
			editor.AddItem(input, 1, 0, false)
			app.SetFocus(input)
			return
		case *cameractrls.InfoControl:
			editor.AddItem(tview.NewTextView().SetText(ctrl.State().Text), 0, 1, false)
			return
		}
		picker := entryPicker(app, controlsList, entries, assign)
		editor.AddItem(picker, 0, 1, false)
		app.SetFocus(picker)
	}

	showPage := func(page cameractrls.Page) {
		controlsList.Clear()
		clear(rows)
		for _, cat := range page.Categories {
			for _, ctrl := range cat.Controls {
				title, second := rowTexts(cat.Title, ctrl)
				rows[ctrl] = rowInfo{index: controlsList.GetItemCount(), category: cat.Title}
				controlsList.AddItem(title, second, 0, func() { openEditor(ctrl) })
			}
		}
		app.SetFocus(controlsList)
	}

	for _, page := range cam.Pages() {
		pagesList.AddItem(page.Title, "", 0, func() { showPage(page) })
	}

	if cam.HasPTZ() {
		bindPTZ(app, cam.PTZ())
	}

	listener, err := cam.Subscribe(func(ctrl cameractrls.Control) {
		app.QueueUpdateDraw(func() { refreshRow(ctrl) })
	}, func(err error) {
		log.Printf("listener: %v", err)
	})
	if err != nil {
		log.Printf("can't subscribe to control events: %v", err)
	} else {
		defer listener.Stop()
	}

	flex := tview.NewFlex().
		AddItem(pagesList, 20, 0, true).
		AddItem(controlsList, 0, 2, false).
		AddItem(editor, 0, 1, false)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case batch := <-applyCh:
				var warns cameractrls.Warnings
				cam.Apply(batch, &warns)
				for _, w := range warns {
					log.Printf("warning: %s", w)
				}
				app.QueueUpdateDraw(refreshVisible)
			}
		}
	})
	g.Go(func() error {
		defer cancel()
		root := tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(flex, 0, 1, true).
			AddItem(logText, 10, 0, false)
		return app.SetRoot(root, true).Run()
	})
	if err := g.Wait(); err != nil {
		panic(err)
	}
}

// entryPicker lists a control's choices. Hidden entries are shown too:
// they hold the save actions a pointer UI would put behind a long press.
func entryPicker(app *tview.Application, back tview.Primitive, entries []cameractrls.MenuEntry, pick func(string)) *tview.List {
	l := tview.NewList().ShowSecondaryText(false)
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = e.ID
		}
		l.AddItem(name, "", 0, func() {
			pick(e.ID)
			app.SetFocus(back)
		})
	}
	return l
}

// bindPTZ moves the camera on Alt plus arrows, zooms on Alt plus and
// minus, recenters on Alt 0. Plain keys stay with the focused widget.
func bindPTZ(app *tview.Application, ptz *cameractrls.PTZController) {
	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Modifiers()&tcell.ModAlt == 0 {
			return ev
		}
		var warns cameractrls.Warnings
		switch ev.Key() {
		case tcell.KeyLeft:
			ptz.PanStep(-1, &warns)
		case tcell.KeyRight:
			ptz.PanStep(1, &warns)
		case tcell.KeyUp:
			ptz.TiltStep(1, &warns)
		case tcell.KeyDown:
			ptz.TiltStep(-1, &warns)
		case tcell.KeyRune:
			switch ev.Rune() {
			case '+':
				ptz.ZoomStep(1, &warns)
			case '-':
				ptz.ZoomStep(-1, &warns)
			case '0':
				ptz.Reset(&warns)
			default:
				return ev
			}
		default:
			return ev
		}
		for _, w := range warns {
			log.Printf("warning: %s", w)
		}
		return nil
	})
}

// rowTexts renders one control row: the name on the main line, category,
// value and state flags on the second.
func rowTexts(category string, ctrl cameractrls.Control) (string, string) {
	s := ctrl.State()
	second := category
	if v := controlValue(ctrl); v != "" {
		second = fmt.Sprintf("%s = %s", category, v)
	}
	if s.Inactive {
		second += " | inactive"
	}
	if s.ReadOnly {
		second += " | readonly"
	}
	return ctrl.Meta().Name, second
}

func controlValue(ctrl cameractrls.Control) string {
	s := ctrl.State()
	switch c := ctrl.(type) {
	case *cameractrls.MenuControl:
		return s.Entry
	case *cameractrls.InfoControl:
		return s.Text
	case *cameractrls.IntegerControl:
		return c.Meta().Hint.FormatValue(s.Value)
	case *cameractrls.BooleanControl:
		if s.Value != 0 {
			return "on"
		}
		return "off"
	}
	return ""
}
