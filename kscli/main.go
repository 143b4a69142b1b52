/*
Command kscli is an interactive shell for key signatures.

It hosts a score with a single staff and a key signature at the start of the
staff. Commands change the key, the clef or the flags of the key signature and
print the resulting layout:

	ks > key:3:-2 layout
	ks > clef:F layout xml
	ks > naturals:off undo

Steps of a command line are separated by blanks, arguments of a step by
colons. Quit with <ctrl>D or "quit".

Flags:

	-trace  trace level [Debug|Info|Error]
	-style  TOML file with the layout style
	-font   music font to take glyph boxes from

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/scorelayout"
	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/keysig"
	"github.com/npillmayer/scorelayout/score"
	"github.com/npillmayer/scorelayout/sym"
	"github.com/pterm/pterm"
)

// tracer traces with key 'scorelayout.cli'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout.cli")
}

var traceKeys = []string{
	"scorelayout",
	"scorelayout.cli",
	"scorelayout.keysig",
	"scorelayout.score",
	"scorelayout.sym",
	"scorelayout.config",
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Info"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	stylefile := flag.String("style", "", "TOML file with layout style")
	fontname := flag.String("font", "", "Music font to load")
	flag.Parse()
	pterm.Info.Println("Welcome to the key signature CLI") // colored welcome message
	//
	style := config.Default()
	if *stylefile != "" {
		var err error
		if style, err = config.Load(*stylefile); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(2)
		}
	}
	//
	// set up REPL
	repl, err := readline.New("ks > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.setup(style, *fontname); err != nil {
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug", "Info", "Error":
		style.Trace.Level = *tlevel
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	for _, key := range traceKeys {
		style.ApplyTraceLevel(tracing.Select(key))
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
	repl  *readline.Instance
	score *score.Score
	staff *score.Staff
	ks    *keysig.KeySig
}

func (intp *Intp) setup(style config.Style, fontname string) error {
	var metrics sym.Metrics = sym.StaticMetrics{}
	if fontname != "" {
		mf, err := scorelayout.LoadMusicFont(fontname, style)
		if err != nil {
			return err
		}
		pterm.Printf("music font: %s\n", mf.Fontname)
		metrics = mf.Metrics
	}
	intp.score = score.New(style, metrics)
	intp.staff = intp.score.AddStaff("Staff 1", clef.G)
	ks, err := intp.score.AddKeySig(intp.staff, 0, keysig.NewEvent(0, 0))
	if err != nil {
		return err
	}
	intp.ks = ks
	intp.score.Layout()
	return nil
}

func (intp *Intp) String() string {
	if intp == nil || intp.ks == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( clef=%s key=%v", intp.staff.ClefAt(0), intp.ks.Event()))
	if intp.staff.IsTabStaff() {
		sb.WriteString(" tab")
	}
	if !intp.ks.ShowNaturals() {
		sb.WriteString(" -naturals")
	}
	if !intp.ks.ShowCourtesy() {
		sb.WriteString(" -courtesy")
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		if intp.score.LayoutAll() {
			intp.score.Layout()
		}
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
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	args []string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	KEY
	CLEF
	NATURALS
	COURTESY
	TAB
	LAYOUT
	XML
	NAME
	UNDO
	REDO
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"key":      KEY,
	"clef":     CLEF,
	"naturals": NATURALS,
	"courtesy": COURTESY,
	"tab":      TAB,
	"layout":   LAYOUT,
	"xml":      XML,
	"name":     NAME,
	"undo":     UNDO,
	"redo":     REDO,
}

var opNames = []string{
	"quit",
	"help",
	"key",
	"clef",
	"naturals",
	"courtesy",
	"tab",
	"layout",
	"xml",
	"name",
	"undo",
	"redo",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].args = nil
	}
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command line: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":") // e.g.  "key:3:-2" or "clef:F" or "help"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].args = c[1:]
		tracer().Debugf("%s: args = %v", opNames[code], command.op[i].args)
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	KEY:      keyOp,
	CLEF:     clefOp,
	NATURALS: naturalsOp,
	COURTESY: courtesyOp,
	TAB:      tabOp,
	LAYOUT:   layoutOp,
	XML:      xmlOp,
	NAME:     nameOp,
	UNDO:     undoOp,
	REDO:     redoOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// ----------------------------------------------------------------------

func (op *Op) arg(inx int) string {
	if len(op.args) > inx {
		return op.args[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg(0) == ""
}
