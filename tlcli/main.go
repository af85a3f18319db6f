package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/typeline/internal/textload"
	"github.com/npillmayer/typeline/textfile"
	"github.com/pterm/pterm"
)

// tracer traces with key 'typeline.cli'
func tracer() tracing.Trace {
	return tracing.Select("typeline.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.typeline.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	filename := flag.String("file", "", "Text file to load")
	charset := flag.String("charset", "", "Charset of the text file (IANA name)")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)    // will set the correct level later
	pterm.Info.Println("Welcome to Typeline CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("tl > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load text file to use, if provided by flag
	if *filename != "" {
		if err := intp.loadText(*filename, *charset); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	text *textload.TextStream
}

func (intp *Intp) String() string {
	if intp == nil || intp.text == nil {
		return "()"
	}
	s := fmt.Sprintf("( file=%s", intp.text.Filename)
	if intp.text.Charset != "" {
		s += fmt.Sprintf(" charset=%s", intp.text.Charset)
	}
	if pos, err := intp.text.Stream.TellRead(); err == nil {
		s += fmt.Sprintf(" @%d", pos)
	}
	return s + " )"
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	if intp.text != nil {
		intp.text.Close()
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
	opt  string
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LOAD
	LINES
	WRAP
	TELL
	SEEK
	CHARSET
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"load":    LOAD,
	"lines":   LINES,
	"wrap":    WRAP,
	"tell":    TELL,
	"seek":    SEEK,
	"charset": CHARSET,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"lines",
	"wrap",
	"tell",
	"seek",
	"charset",
}

func (intp *Intp) parseCommand(line string) (*Op, error) {
	words := strings.Fields(line)
	op := &Op{code: NOOP}
	code, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		code = HELP
		op.arg = words[0]
	}
	op.code = code
	if op.code == QUIT {
		return op, nil
	}
	if op.arg == "" && len(words) > 1 {
		op.arg = words[1]
	}
	if len(words) > 2 {
		op.opt = words[2]
	}
	if op.arg == "" {
		tracer().Infof("%s", opNames[op.code])
	} else {
		tracer().Infof("%s: with argument '%s'", opNames[op.code], op.arg)
	}
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	LOAD:    loadOp,
	LINES:   linesOp,
	WRAP:    wrapOp,
	TELL:    tellOp,
	SEEK:    seekOp,
	CHARSET: charsetOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	tracer().Debugf("op = %v", op)
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	err, stop = f(intp, op)
	if err != nil {
		pterm.Error.Println(err)
		return nil, stop
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		return errors.New("load: expected a file name"), false
	}
	return intp.loadText(op.arg, op.opt), false
}

func tellOp(intp *Intp, op *Op) (error, bool) {
	if intp.text == nil {
		return errNoText, false
	}
	pos, err := intp.text.Stream.TellRead()
	if err != nil {
		return err, false
	}
	pterm.Printf("reading position is at byte %d\n", pos)
	return nil, false
}

func seekOp(intp *Intp, op *Op) (error, bool) {
	if intp.text == nil {
		return errNoText, false
	}
	if op.arg == "" {
		return errors.New("seek: expected a byte position"), false
	}
	pos, err := strconv.ParseInt(op.arg, 10, 64)
	if err != nil || pos < 0 {
		return fmt.Errorf("seek: not a byte position: %q", op.arg), false
	}
	if err := intp.text.Stream.Seek(textfile.Position(pos)); err != nil {
		return err, false
	}
	pterm.Printf("reading position set to byte %d\n", pos)
	return nil, false
}

func charsetOp(intp *Intp, op *Op) (error, bool) {
	if intp.text == nil {
		return errNoText, false
	}
	if op.arg == "" {
		return errors.New("charset: expected an IANA charset name"), false
	}
	enc, err := textload.ResolveCharset(op.arg)
	if err != nil {
		return err, false
	}
	// drop read-ahead decoded under the old charset
	if err := intp.text.Stream.Discard(); err != nil {
		return err, false
	}
	if err := intp.text.Stream.Imbue(enc); err != nil {
		return err, false
	}
	intp.text.Charset = op.arg
	pterm.Printf("charset is now %s\n", op.arg)
	return nil, false
}

var errNoText = errors.New("no text file loaded; use 'load <file>'")

// --- Text Loading ----------------------------------------------------------

func (intp *Intp) loadText(filename, charset string) error {
	if intp.text != nil {
		intp.text.Close()
		intp.text = nil
	}
	text, err := textload.OpenTextFile(filename, charset)
	if err != nil {
		return err
	}
	intp.text = text
	pterm.Printf("loaded %s\n", filename)
	return nil
}
