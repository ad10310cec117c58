// Package cli implements zdial's command-line subcommands.
package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdial/internal/country"
	"github.com/zarlcorp/zdial/internal/export"
	"github.com/zarlcorp/zdial/internal/extract"
	"github.com/zarlcorp/zdial/internal/generate"
	"github.com/zarlcorp/zdial/internal/numplan"
	"github.com/zarlcorp/zdial/internal/preset"
	"github.com/zarlcorp/zdial/internal/serial"
	"golang.org/x/term"
)

// DataDir returns the default data directory for zdial.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zdial"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zdial"
	}
	return home + "/.local/share/zdial"
}

// OpenPresets opens the preset store in the data directory.
func OpenPresets() (*preset.Store, error) {
	dir := DataDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return preset.Open(zfilesystem.NewOSFileSystem(dir))
}

// CmdGenerate generates numbers per flags and writes them to a CSV file.
func CmdGenerate(args []string) {
	fs := pflag.NewFlagSet("generate", pflag.ExitOnError)
	countryID := fs.String("country", "", "country: ISO code (US), full name (United States), or calling code (+1)")
	count := fs.Int("count", 0, "how many valid numbers to generate")
	localLength := fs.Int("local-length", 0, "digits in the local part (without country code)")
	serialEnabled := fs.Bool("serial-enabled", false, "enable serial / prefix mode")
	serialPlacement := fs.String("serial-placement", "suffix", "serial placement: prefix or suffix")
	serialStart := fs.Uint64("serial-start", 0, "starting serial value")
	serialStep := fs.Uint64("serial-step", 1, "serial increment")
	sequentialOnly := fs.Bool("sequential-only", false, "serial is the whole local part, no random digits")
	fixedPrefixLen := fs.Int("fixed-prefix-len", 0, "keep the first N digits of serial-start fixed and randomize the rest")
	strictLength := fs.Bool("strict-length", false, "fail if local-length is not realistic for the region")
	filenamePrefix := fs.String("filename-prefix", "numbers", "prefix for the derived CSV filename")
	noProgress := fs.Bool("no-progress", false, "suppress progress output")
	output := fs.StringP("output", "o", "", "exact output path (overrides the derived filename)")
	force := fs.Bool("force", false, "overwrite the output file if it exists")
	presetName := fs.String("preset", "", "load a saved preset as the baseline")
	savePreset := fs.String("save-preset", "", "save these settings under a preset name")
	_ = fs.Parse(args)

	p := preset.Preset{
		Country:     *countryID,
		Count:       *count,
		LocalLength: *localLength,
		Serial: serial.Config{
			Enabled:        *serialEnabled,
			Placement:      serial.Placement(*serialPlacement),
			Start:          *serialStart,
			Step:           *serialStep,
			SequentialOnly: *sequentialOnly,
			FixedPrefixLen: *fixedPrefixLen,
		},
		Strict:         *strictLength,
		FilenamePrefix: *filenamePrefix,
	}

	if *presetName != "" {
		store, err := OpenPresets()
		if err != nil {
			fail("%v", err)
		}
		loaded, err := store.Get(*presetName)
		if err != nil {
			fail("preset %s: %v", *presetName, err)
		}
		p = mergeFlags(loaded, fs, p)
	}

	if p.Country == "" {
		fail("--country is required")
	}
	if p.Count <= 0 {
		fail("--count must be a positive integer")
	}
	if p.LocalLength <= 0 {
		fail("--local-length must be a positive integer")
	}

	c, err := country.Resolve(p.Country)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Resolved country: %s (region: %s, calling code: +%d)\n", c.Name, c.Region, c.CallingCode)

	if adv := numplan.AdviseLength(c.Region, p.LocalLength); adv.Atypical {
		if p.Strict {
			fail("%v", adv.Err(c.Region, p.LocalLength))
		}
		warn := fmt.Sprintf("local length %d looks atypical for %s", p.LocalLength, c.Region)
		if adv.Hint != "" {
			warn += "; " + adv.Hint
		}
		fmt.Fprintln(os.Stderr, "warning: "+warn)
	}

	if err := p.Serial.Validate(p.LocalLength); err != nil {
		fail("%v", err)
	}

	if *savePreset != "" {
		store, err := OpenPresets()
		if err != nil {
			fail("%v", err)
		}
		p.Name = *savePreset
		p.CreatedAt = time.Now().UTC()
		if err := store.Save(p); err != nil {
			fail("%v", err)
		}
		fmt.Fprintf(os.Stderr, "saved preset %q\n", *savePreset)
	}

	req := generate.Request{
		Region:      c.Region,
		CallingCode: c.CallingCode,
		Count:       p.Count,
		LocalLength: p.LocalLength,
		Serial:      p.Serial,
	}

	var progressFn generate.ProgressFunc
	if !*noProgress && term.IsTerminal(int(os.Stderr.Fd())) {
		every := p.Count / 10
		if every < 1 {
			every = 1
		}
		progressFn = func(valid, attempts int) {
			if valid%every == 0 || valid == p.Count {
				fmt.Fprintf(os.Stderr, "Progress: %d/%d valid (attempts: %d)\n", valid, p.Count, attempts)
			}
		}
	}

	started := time.Now()
	res, err := generate.Run(req, numplan.Plan{}, progressFn)
	if err != nil {
		fail("%v", err)
	}
	elapsed := time.Since(started)

	if res.Partial {
		fmt.Fprintf(os.Stderr,
			"Reached attempt limit (%d attempts); generated %d of %d requested numbers.\n",
			res.Attempts, len(res.Records), p.Count)
	}
	if len(res.Records) == 0 {
		fail("no valid numbers generated")
	}

	outPath := *output
	if outPath == "" {
		outPath = export.Filename(p.FilenamePrefix, c.Region, c.CallingCode, time.Now())
	}

	fsys := zfilesystem.NewOSFileSystem(filepath.Dir(outPath))
	name := filepath.Base(outPath)
	if !*force && export.Exists(fsys, name) {
		fail("%s already exists (use --force to overwrite)", outPath)
	}
	if err := export.Write(fsys, name, res.Records); err != nil {
		fail("%v", err)
	}

	fmt.Println("\n---------------- Summary ----------------")
	fmt.Printf("Country: %s (%s), calling code: +%d\n", c.Name, c.Region, c.CallingCode)
	fmt.Printf("Requested: %d\n", p.Count)
	fmt.Printf("Valid unique numbers saved: %d\n", len(res.Records))
	fmt.Printf("Attempts: %d\n", res.Attempts)
	fmt.Printf("CSV file: %s\n", outPath)
	fmt.Printf("Time taken: %.2f seconds\n", elapsed.Seconds())
	fmt.Println("----------------------------------------")
}

// mergeFlags overlays explicitly-set flags on top of a loaded preset.
func mergeFlags(base preset.Preset, fs *pflag.FlagSet, flags preset.Preset) preset.Preset {
	if fs.Changed("country") {
		base.Country = flags.Country
	}
	if fs.Changed("count") {
		base.Count = flags.Count
	}
	if fs.Changed("local-length") {
		base.LocalLength = flags.LocalLength
	}
	if fs.Changed("serial-enabled") {
		base.Serial.Enabled = flags.Serial.Enabled
	}
	if fs.Changed("serial-placement") {
		base.Serial.Placement = flags.Serial.Placement
	}
	if fs.Changed("serial-start") {
		base.Serial.Start = flags.Serial.Start
	}
	if fs.Changed("serial-step") {
		base.Serial.Step = flags.Serial.Step
	}
	if fs.Changed("sequential-only") {
		base.Serial.SequentialOnly = flags.Serial.SequentialOnly
	}
	if fs.Changed("fixed-prefix-len") {
		base.Serial.FixedPrefixLen = flags.Serial.FixedPrefixLen
	}
	if fs.Changed("strict-length") {
		base.Strict = flags.Strict
	}
	if fs.Changed("filename-prefix") {
		base.FilenamePrefix = flags.FilenamePrefix
	}
	return base
}

// CmdExport extracts the e164_number column from a CSV into a text file.
func CmdExport(args []string) {
	fs := pflag.NewFlagSet("export", pflag.ExitOnError)
	output := fs.StringP("output", "o", "", "output text file (default: numbers.txt beside the input)")
	_ = fs.Parse(args)

	csvPath := fs.Arg(0)
	if csvPath == "" {
		csvPath = promptLine("Enter path to CSV file: ")
	}
	if csvPath == "" {
		fail("a CSV path is required")
	}

	in, err := os.Open(csvPath)
	if err != nil {
		fail("open %s: %v", csvPath, err)
	}
	defer in.Close()

	// extract into memory first so a failure leaves no output file behind
	var buf bytes.Buffer
	n, err := extract.Extract(in, &buf)
	if err != nil {
		fail("%v", err)
	}

	outPath := extract.OutputPath(csvPath, *output)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		fail("write %s: %v", outPath, err)
	}

	fmt.Printf("Exported %d numbers from %q to %q.\n", n, csvPath, outPath)
}

// CmdPresets lists all saved presets.
func CmdPresets(args []string) {
	asJSON := hasFlag(args, "--json")

	store, err := OpenPresets()
	if err != nil {
		fail("%v", err)
	}

	ps, err := store.List()
	if err != nil {
		fail("list: %v", err)
	}

	if len(ps) == 0 {
		fmt.Println("no saved presets")
		return
	}

	if asJSON {
		printJSON(ps)
		return
	}

	for _, p := range ps {
		fmt.Printf("  %-16s %-18s count=%-6d length=%-4d %s\n",
			p.Name,
			p.Country,
			p.Count,
			p.LocalLength,
			p.CreatedAt.Format("2006-01-02"),
		)
	}
}

// CmdForget deletes a saved preset by name.
func CmdForget(name string) {
	store, err := OpenPresets()
	if err != nil {
		fail("%v", err)
	}

	if err := store.Delete(name); err != nil {
		fail("forget: %v", err)
	}
	fmt.Printf("deleted %s\n", name)
}

// promptLine prints a prompt on stderr and reads one line from stdin.
func promptLine(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "zdial: "+format+"\n", args...)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail("encode json: %v", err)
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}
