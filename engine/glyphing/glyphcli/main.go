package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/bitglyph/core"
	"github.com/npillmayer/bitglyph/core/atlas"
	"github.com/npillmayer/bitglyph/core/atlas/compile"
	"github.com/npillmayer/bitglyph/core/atlas/registry"
	"github.com/npillmayer/bitglyph/engine/glyphing"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'bitglyph.glyphs'
func tracer() tracing.Trace {
	return tracing.Select("bitglyph.glyphs")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (name or .atlas/.bglf/.yaml file); builtin font if empty")
	strategy := flag.String("strategy", "auto", "Storage strategy for compiled fonts [sparse|dense|auto]")
	atlaspath := flag.String("path", "", "Directories to search for fonts")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.bitglyph.glyphs":  *tlevel,
		"trace.bitglyph.atlas":   *tlevel,
		"trace.bitglyph.compile": *tlevel,
		"atlas-strategy":         *strategy,
		"atlas-path":             *atlaspath,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	gconf.Initialize(conf)
	pterm.Info.Println("Welcome to the glyph atlas CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	if _, ok := atlas.ParseStrategy(*strategy); !ok {
		pterm.Error.Printfln("unknown strategy %q", *strategy)
		os.Exit(2)
	}
	// set up REPL
	repl, err := readline.New("atlas > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		core.UserError(os.Stderr, err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                              // go into interactive mode
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
	font *atlas.Font
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a single interpreter command, e.g. "resolve:office".
type Command struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	INFO
	RESOLVE
	STREAM
	LOAD
	SAVE
	PREVIEW
)

func parseCommand(line string) Command {
	c := strings.SplitN(line, ":", 2) // e.g.  "resolve:fish" or "save:my.yaml"
	tracer().Debugf("parse command = %v", c)
	cmd := Command{arg: getOptArg(c, 1)}
	switch strings.ToLower(strings.TrimSpace(c[0])) {
	case "quit", "exit":
		cmd.code = QUIT
	case "info":
		cmd.code = INFO
	case "resolve", "r":
		cmd.code = RESOLVE
	case "stream", "s":
		cmd.code = STREAM
	case "load":
		cmd.code = LOAD
	case "save":
		cmd.code = SAVE
	case "preview":
		cmd.code = PREVIEW
	default:
		cmd.code = HELP
	}
	return cmd
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(cmd.arg)
	case INFO:
		intp.info()
		registry.GlobalRegistry().LogFontList()
	case RESOLVE:
		r := glyphing.NewSliceResolver(intp.font, []rune(cmd.arg))
		return false, printOutcomes(r)
	case STREAM:
		r := glyphing.NewNormalizingResolver(intp.font, strings.NewReader(cmd.arg), norm.NFC)
		return false, printOutcomes(r)
	case LOAD:
		return false, intp.loadFont(cmd.arg)
	case SAVE:
		return false, compile.SaveFont(intp.font, cmd.arg)
	case PREVIEW:
		return false, intp.preview(cmd.arg)
	}
	return false, nil
}

// loadFont resolves a font by name or file path. An empty name selects
// the builtin font.
func (intp *Intp) loadFont(fontname string) error {
	if fontname == "" {
		intp.font = compile.Builtin()
		intp.info()
		return nil
	}
	f, err := registry.ResolveFont(fontname).Font()
	if err != nil {
		return err
	}
	intp.font = f
	intp.info()
	return nil
}

func (intp *Intp) info() {
	f := intp.font
	pterm.Printfln("atlas of %dx%d pixels, %s table with %d glyphs, %d ligatures",
		f.Width(), f.Height(), f.Strategy(), f.SingleCount(), f.PairCount())
}

func printOutcomes(r glyphing.Resolver) error {
	outcomes, err := glyphing.Collect(r)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"#", "kind", "chars", "glyph"}}
	for i, o := range outcomes {
		glyph := "-"
		if g, ok := o.Glyph(); ok {
			glyph = g.String()
		}
		data = append(data, []string{
			strconv.Itoa(i), o.Kind().String(), strconv.Quote(string(o.Chars())), glyph,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// preview writes the atlas bitmap as a PNG image. An optional scale factor
// may follow the file name, e.g. "preview:atlas.png:4".
func (intp *Intp) preview(arg string) error {
	a := strings.Split(arg, ":")
	scale := 1
	if s := getOptArg(a, 1); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return core.Error(core.EINVALID, "scale must be a positive number: %q", s)
		}
		scale = n
	}
	out, err := os.Create(a[0])
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot create %s", a[0])
	}
	defer out.Close()
	if err = png.Encode(out, compile.AtlasImage(intp.font, scale)); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", a[0])
	}
	pterm.Success.Printfln("atlas written to %s", a[0])
	return nil
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "resolve", "stream":
		pterm.Info.Println("Resolving text")
		pterm.Println(`
	resolve:<text>   resolves text with random access, a ligature consumes both characters
	stream:<text>    resolves NFC-normalized text with one character of lookahead;
	                 the second character of a ligature is examined again
	Every character yields an outcome, characters missing from the atlas are 'unknown'.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info                     show the loaded atlas
	resolve:<text>           resolve text into glyphs
	stream:<text>            resolve text as a stream
	load:<font>              load an atlas by name or file (.atlas, .bglf, .yaml); empty for the builtin font
	save:<file>              save the atlas (.bglf, .yaml)
	preview:<file.png>[:n]   write the atlas bitmap, magnified n times
	help:<topic>             help on a topic
	quit                     leave
	`)
	}
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}
