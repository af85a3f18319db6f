package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/typeline"
	"github.com/npillmayer/typeline/linebreak"
	"github.com/npillmayer/typeline/measure"
	"github.com/pterm/pterm"
)

const defaultLineCount = 10

func linesOp(intp *Intp, op *Op) (error, bool) {
	if intp.text == nil {
		return errNoText, false
	}
	n := defaultLineCount
	if op.arg != "" {
		var err error
		if n, err = strconv.Atoi(op.arg); err != nil || n <= 0 {
			return fmt.Errorf("lines: not a line count: %q", op.arg), false
		}
	}
	for i := 0; i < n; i++ {
		line, found, err := intp.text.Stream.ReadUntil('\n', nil, false)
		if err != nil {
			return err, false
		}
		if !found && len(line) == 0 {
			pterm.Info.Println("end of text")
			break
		}
		pterm.Println(strings.TrimRight(string(line), "\r\n"))
		if !found {
			pterm.Info.Println("end of text")
			break
		}
	}
	return nil, false
}

func wrapOp(intp *Intp, op *Op) (error, bool) {
	if intp.text == nil {
		return errNoText, false
	}
	if op.arg == "" {
		return errors.New("wrap: expected a line width"), false
	}
	width, err := strconv.Atoi(op.arg)
	if err != nil || width <= 0 {
		return fmt.Errorf("wrap: not a line width: %q", op.arg), false
	}
	para, err := readParagraph(intp)
	if err != nil {
		return err, false
	}
	if para == "" {
		pterm.Info.Println("end of text")
		return nil, false
	}
	var lines []string
	switch strings.ToLower(op.opt) {
	case "", "greedy":
		lines = typeline.BreakIntoLines(para, width)
	case "optimal":
		if lines, err = typeline.BreakIntoLinesBalanced(para, width); err != nil {
			return err, false
		}
	default:
		return fmt.Errorf("wrap: unknown method %q", op.opt), false
	}
	printLines(lines, width)
	return nil, false
}

// readParagraph collects lines up to the next blank line or end of text.
func readParagraph(intp *Intp) (string, error) {
	sb := strings.Builder{}
	for {
		line, found, err := intp.text.Stream.ReadUntil('\n', nil, false)
		if err != nil {
			return "", err
		}
		text := strings.TrimRight(string(line), "\r\n")
		if text == "" {
			if !found || sb.Len() > 0 {
				break
			}
			continue // skip leading blank lines
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		if !found {
			break
		}
	}
	return sb.String(), nil
}

func printLines(lines []string, width int) {
	data := [][]string{
		{"Line", "Cells", "Text"},
	}
	for i, line := range lines {
		words, _ := measure.Words(line)
		cells := linebreak.Dimen(0)
		for j, w := range words {
			cells += w.Size
			if j < len(words)-1 {
				cells += w.SpaceSize
			}
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d/%d", cells, width),
			line,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
