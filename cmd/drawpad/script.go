package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/canvas"
	"github.com/example/drawpad/internal/palette"
)

// replayScript applies a stroke script to cv line by line. Errors carry the
// line number; a stroke left open at the end of the script is committed.
func replayScript(r io.Reader, cv *canvas.Canvas) error {
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := applyScriptLine(cv, strings.ToLower(fields[0]), fields[1:]); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	cv.EndStroke()
	return nil
}

func applyScriptLine(cv *canvas.Canvas, cmd string, args []string) error {
	switch cmd {
	case "color":
		if len(args) != 1 {
			return fmt.Errorf("color requires one argument")
		}
		if !cv.SetColor(args[0]) {
			return fmt.Errorf("invalid color %q", args[0])
		}
	case "size":
		if len(args) != 1 {
			return fmt.Errorf("size requires one argument")
		}
		w, err := palette.ParseBrush(args[0])
		if err != nil {
			return err
		}
		cv.SetBrushSize(w)
	case "begin", "extend":
		pts, err := parsePoints(args)
		if err != nil {
			return err
		}
		if len(pts) != 1 {
			return fmt.Errorf("%s requires x y", cmd)
		}
		if cmd == "begin" {
			cv.BeginStroke(pts[0])
		} else {
			cv.ExtendStroke(pts[0])
		}
	case "end":
		cv.EndStroke()
	case "stroke":
		pts, err := parsePoints(args)
		if err != nil {
			return err
		}
		if len(pts) == 0 {
			return fmt.Errorf("stroke requires at least one x y pair")
		}
		cv.EndStroke()
		cv.BeginStroke(pts[0])
		for _, p := range pts[1:] {
			cv.ExtendStroke(p)
		}
		cv.EndStroke()
	case "undo":
		cv.Undo()
	case "redo":
		cv.Redo()
	case "clear":
		cv.Clear()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func parsePoints(args []string) ([]canvas.Point, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("coordinates must come in x y pairs")
	}
	pts := make([]canvas.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", args[i])
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", args[i+1])
		}
		pts = append(pts, canvas.Point{X: x, Y: y})
	}
	return pts, nil
}
