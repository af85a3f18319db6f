package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "load", "charset":
		pterm.Info.Println("load / charset")
		pterm.Println(`
	load <file> [charset]    opens a text file; an optional IANA charset
	                         name selects how its bytes are decoded.
	charset <name>           switches the charset of the loaded file.
	                         The remainder of the file is decoded with
	                         the new charset; text already read keeps
	                         its old interpretation.
	Omitting the charset (or naming utf-8) reads the file as plain UTF-8.
	`)
	case "lines", "wrap":
		pterm.Info.Println("lines / wrap")
		pterm.Println(`
	lines [n]                  reads and prints the next n lines (default 10).
	wrap <width> [method]      reads the next paragraph (up to a blank line)
	                           and breaks it into lines of at most <width>
	                           terminal cells. Methods:
	                               greedy    first-fit, the default
	                               optimal   minimizes total raggedness
	`)
	case "tell", "seek":
		pterm.Info.Println("tell / seek")
		pterm.Println(`
	tell            prints the byte position of the next unread character.
	seek <pos>      moves reading to a byte position previously reported
	                by tell. Seeking to arbitrary positions is undefined
	                for stateful charsets.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <file> [charset]     open a text file
	lines [n]                 print the next n lines
	wrap <width> [method]     line-break the next paragraph
	tell                      print the reading position
	seek <pos>                move the reading position
	charset <name>            switch the charset of the loaded file
	help [topic]              this text; topics: load, lines, wrap, tell
	quit                      leave (or press <ctrl>D)
	`)
	}
}
