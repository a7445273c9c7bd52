// Command assetcheck preloads an asset manifest without opening a window and
// reports the status of every asset.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/milk9111/wisperingaway/assets"
	"github.com/milk9111/wisperingaway/endscreen"
)

func main() {
	dir := flag.String("assets", "", "asset directory (default: embedded set)")
	manifestName := flag.String("manifest", assets.DefaultManifest, "manifest name inside the asset set")
	timeout := flag.Duration("timeout", 30*time.Second, "maximum time to wait for all assets")
	jobs := flag.Int("j", 4, "number of assets decoded in parallel")
	flag.Parse()

	fsys, err := assets.Open(*dir)
	if err != nil {
		log.Fatal(err)
	}
	ok, err := run(os.Stdout, fsys, *manifestName, *timeout, *jobs)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(1)
	}
}

// run preloads the manifest and prints a status table. It reports false when
// an asset failed, the verdict script is broken, or loading timed out.
func run(out io.Writer, fsys fs.FS, manifestName string, timeout time.Duration, jobs int) (bool, error) {
	m, err := assets.LoadManifest(fsys, manifestName)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	set, err := assets.NewLoader(fsys, jobs).Preload(ctx, m, nil)
	if err != nil {
		return false, err
	}
	waitErr := set.Gate().Wait(ctx)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ASSET\tSTATUS\tERROR")
	for _, h := range set.Handles() {
		msg := ""
		if err := h.Err(); err != nil {
			msg = err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Key(), h.Status(), msg)
	}
	_ = tw.Flush()

	if waitErr != nil {
		fmt.Fprintf(out, "gave up after %s: %d/%d assets complete\n", timeout, set.Gate().Completed(), set.Gate().Total())
		return false, nil
	}
	fmt.Fprintf(out, "ready in %s\n", time.Since(start).Round(time.Millisecond))

	healthy := len(set.Failures()) == 0
	if m.Verdict != "" {
		src, err := assets.ReadFile(fsys, m.Verdict)
		if err == nil {
			_, err = endscreen.CompileVerdict(src)
		}
		if err != nil {
			fmt.Fprintf(out, "verdict %s: %v\n", m.Verdict, err)
			healthy = false
		}
	}
	return healthy, nil
}
