package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kevmo314/cameractrls"
)

func main() {
	log.SetFlags(0)

	device := flag.String("d", "/dev/video0", "use `DEVICE`")
	listControls := flag.Bool("l", false, "list the controls and values")
	listDevices := flag.Bool("L", false, "list capture devices")
	controls := flag.String("c", "", "set `CONTROLS` (eg.: hdr=on,fov=wide)")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s [-h] [-d DEVICE] [-l] [-L] [-c CONTROLS]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nexample:\n  %s -c brightness=128,kiyo_pro_hdr=on,kiyo_pro_fov=wide\n", os.Args[0])
	}
	flag.Parse()

	if !*listControls && !*listDevices && *controls == "" {
		flag.Usage()
		return
	}

	if *listDevices {
		for _, d := range cameractrls.ListDevices() {
			fmt.Println(d)
		}
		return
	}

	var warns cameractrls.Warnings
	cam, err := cameractrls.Open(cameractrls.Config{Device: *device}, &warns)
	if err != nil {
		log.Fatalf("can't open %s: %v", *device, err)
	}
	defer cam.Close()
	printWarnings(&warns)

	if *listControls {
		printCtrls(cam)
	}

	if *controls != "" {
		cam.Apply(cameractrls.ParseBatch(*controls, &warns), &warns)
		printWarnings(&warns)
	}
}

func printWarnings(warns *cameractrls.Warnings) {
	for _, w := range *warns {
		log.Printf("warning: %s", w)
	}
	*warns = nil
}

func printCtrls(cam *cameractrls.Camera) {
	for _, page := range cam.Pages() {
		for _, cat := range page.Categories {
			fmt.Printf("%s / %s\n", page.Title, cat.Title)
			for _, ctrl := range cat.Controls {
				fmt.Printf(" %s%s\n", ctrl.Meta().ID, describe(ctrl))
			}
		}
	}
}

// describe renders one control's value and range the way the listing has
// always looked: value first, the immutable bounds in parentheses, state
// flags last.
func describe(ctrl cameractrls.Control) string {
	var b strings.Builder
	s := ctrl.State()
	switch c := ctrl.(type) {
	case *cameractrls.MenuControl:
		fmt.Fprintf(&b, " = %s\t( ", s.Entry)
		if c.Default != "" {
			fmt.Fprintf(&b, "default: %s ", c.Default)
		}
		fmt.Fprintf(&b, "values: %s )", strings.Join(entryList(c.Entries), ", "))
	case *cameractrls.ButtonControl:
		fmt.Fprintf(&b, "\t\t( buttons: %s )", strings.Join(entryList(c.Entries), ", "))
	case *cameractrls.InfoControl:
		fmt.Fprintf(&b, " = %s", s.Text)
	case *cameractrls.IntegerControl:
		fmt.Fprintf(&b, " = %d\t( default: %d min: %d max: %d", s.Value, c.Default, c.Min, c.Max)
		if c.Step != 0 && c.Step != 1 {
			fmt.Fprintf(&b, " step: %d", c.Step)
		}
		b.WriteString(" )")
	case *cameractrls.BooleanControl:
		def := 0
		if c.Default {
			def = 1
		}
		fmt.Fprintf(&b, " = %d\t( default: %d min: 0 max: 1 )", s.Value, def)
	}
	if s.Inactive {
		b.WriteString(" | inactive")
	}
	if s.ReadOnly {
		b.WriteString(" | readonly")
	}
	return b.String()
}

func entryList(entries []cameractrls.MenuEntry) []string {
	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	return ids
}
