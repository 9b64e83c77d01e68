/*
Command karafx generates karaoke effects for ASS subtitle scripts.

	karafx -in song.ass -out fx.ass [-effect karaoke|syllables|frames]
	       [-fps 23.976] [-backend mono|font|harfbuzz] [-lang ja] [-trace Info]

Without -out, the result is written to stdout.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/karafx/backend/ass"
	"github.com/npillmayer/karafx/core"
	"github.com/npillmayer/karafx/engine/environment"
	"github.com/npillmayer/karafx/engine/extents"
	"github.com/npillmayer/karafx/engine/extents/fontmetrics"
	"github.com/npillmayer/karafx/engine/extents/harfbuzz"
	"github.com/npillmayer/karafx/engine/extents/monospace"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// tracer traces with key 'karafx.cli'
func tracer() tracing.Trace {
	return tracing.Select("karafx.cli")
}

func main() {
	os.Exit(run())
}

// run executes the command and returns the process exit code.
func run() int {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.karafx.cli":     "Info",
		"trace.karafx.ass":     "Error",
		"trace.karafx.process": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		return 1
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	inpath := flag.String("in", "", "ASS script to read")
	outpath := flag.String("out", "", "ASS script to write, stdout if empty")
	effect := flag.String("effect", "karaoke", "Effect [karaoke|syllables|frames]")
	fps := flag.Float64("fps", 0, "Video frame rate")
	backendName := flag.String("backend", "mono", "Text extents backend [mono|font|harfbuzz]")
	lang := flag.String("lang", "und", "Language of the lyrics (harfbuzz backend)")
	flag.Parse()
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		return 2
	}
	if *inpath == "" {
		pterm.Error.Println("no input script given, use -in")
		flag.Usage()
		return 2
	}
	//
	env, err := ass.Open(*inpath, ass.Options{FPS: *fps})
	if err != nil {
		return fail(err, 3)
	}
	backend, err := selectBackend(*backendName, *lang)
	if err != nil {
		return fail(err, 2)
	}
	rt, err := environment.NewRuntime(env, backend)
	if err != nil {
		return fail(err, 4)
	}
	if err = environment.Install(rt); err != nil {
		return fail(err, 4)
	}
	fx, ok := effects[*effect]
	if !ok {
		return fail(core.Invalid("unknown effect %q", *effect), 2)
	}
	pterm.Info.Printf("applying effect %q to %s\n", *effect, *inpath)
	n, err := fx(rt, *fps)
	if err != nil {
		return fail(err, 5)
	}
	if err = writeScript(env, *outpath); err != nil {
		return fail(err, 6)
	}
	if *outpath != "" {
		pterm.Success.Printf("wrote %d lines to %s\n", n, *outpath)
	}
	return 0
}

// writeScript dumps env to path, or to stdout if path is empty.
// The output file is closed before returning.
func writeScript(env *ass.Environment, path string) error {
	if path == "" {
		return env.Dump(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", path)
	}
	if err = env.Dump(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func selectBackend(name, lang string) (extents.Backend, error) {
	switch name {
	case "mono":
		return monospace.Backend(nil), nil
	case "font":
		return fontmetrics.Backend(fontmetrics.ResolveFont), nil
	case "harfbuzz":
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "invalid language %q", lang)
		}
		return harfbuzz.Backend(fontmetrics.ResolveFont, tag), nil
	}
	return nil, core.Invalid("unknown backend %q", name)
}

func fail(err error, exitcode int) int {
	tracer().Errorf(err.Error())
	pterm.Error.Println(core.UserMessage(err))
	return exitcode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
