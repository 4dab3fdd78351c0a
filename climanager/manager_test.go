package climanager

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	ff "github.com/sharnoff/feedforward"
	"github.com/sharnoff/feedforward/hyperparams"
	"github.com/sharnoff/feedforward/initializers"
)

func newTestManager() (*Manager, *bytes.Buffer) {
	var out bytes.Buffer
	m := New(&out, Config{
		Args: ff.TrainArgs{LearningRate: hyperparams.Constant(0.1), Momentum: hyperparams.Constant(0.5)},
		RNG:  initializers.Constant(0.25),
	})

	return m, &out
}

// exec runs the line, failing the test if it doesn't succeed
func exec(t *testing.T, m *Manager, line string) {
	t.Helper()

	if _, err := m.Exec(line); err != nil {
		t.Fatalf("Exec(%q) failed: %v", line, err)
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line  string
		words []string
	}{
		{"", nil},
		{"   ", nil},
		{"net.print a", []string{"net.print", "a"}},
		{"  net.read\t x.net   b ", []string{"net.read", "x.net", "b"}},
		{`net.read "my dir/x.net" b`, []string{"net.read", "my dir/x.net", "b"}},
		{`set.read "a \"q\".set" s`, []string{"set.read", `a "q".set`, "s"}},
		{`a ""`, []string{"a", ""}},
	}

	for _, tt := range tests {
		words, err := splitLine(tt.line)
		if err != nil {
			t.Errorf("splitLine(%q) failed: %v", tt.line, err)
			continue
		}

		if len(words) != len(tt.words) {
			t.Errorf("splitLine(%q) = %q, want %q", tt.line, words, tt.words)
			continue
		}

		for i := range words {
			if words[i] != tt.words[i] {
				t.Errorf("splitLine(%q) = %q, want %q", tt.line, words, tt.words)
				break
			}
		}
	}

	for _, line := range []string{`a "b`, `a "b"c`, `a b"c"`} {
		if _, err := splitLine(line); err == nil {
			t.Errorf("splitLine(%q) succeeded, expected an error", line)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, word := range []string{"plain", "with space", `with "quotes"`, ""} {
		words, err := splitLine("cmd " + quote(word))
		if err != nil {
			t.Fatalf("splitLine of quoted %q failed: %v", word, err)
		}

		if len(words) != 2 || words[1] != word {
			t.Errorf("quote(%q) read back as %q", word, words)
		}
	}
}

func TestMakeAndCompute(t *testing.T) {
	m, out := newTestManager()

	exec(t, m, "net.make 3 2 3 1 xor")

	net, ok := m.Network("xor")
	if !ok {
		t.Fatalf("Network not registered after net.make")
	}

	layout := net.Layout()
	if len(layout) != 3 || layout[0] != 2 || layout[1] != 3 || layout[2] != 1 {
		t.Errorf("Layout = %v, want [2 3 1]", layout)
	}

	out.Reset()
	exec(t, m, "net.compute xor 1 0")
	if !strings.Contains(out.String(), "output[0] = ") {
		t.Errorf("net.compute output was %q", out.String())
	}

	bad := []string{
		"net.compute xor 1",
		"net.compute xor 1 x",
		"net.compute nope 1 0",
		"net.make 3 2 3 xor2",
		"net.make 2 2 0 xor2",
		"net.make 0 xor2",
		"net.make 2 2 1 xor",
	}

	for _, line := range bad {
		if _, err := m.Exec(line); err == nil {
			t.Errorf("Exec(%q) succeeded, expected an error", line)
		}
	}

	if len(m.nets) != 1 {
		t.Errorf("%d networks registered, want 1", len(m.nets))
	}
}

func TestTrainAndTest(t *testing.T) {
	dir := t.TempDir()

	ds, err := ff.NewDataset([]ff.Record{
		{Inputs: []float64{0, 0}, Targets: []float64{0}},
		{Inputs: []float64{0, 1}, Targets: []float64{1}},
		{Inputs: []float64{1, 0}, Targets: []float64{1}},
		{Inputs: []float64{1, 1}, Targets: []float64{0}},
	})
	if err != nil {
		t.Fatal(err)
	}

	setPath := filepath.Join(dir, "xor data.set")
	if err = ds.SaveFile(setPath); err != nil {
		t.Fatal(err)
	}

	m, out := newTestManager()
	exec(t, m, "net.make 3 2 2 1 n")
	exec(t, m, "set.read "+quote(setPath)+" xor")

	if set, ok := m.Dataset("xor"); !ok || set.Size() != 4 {
		t.Fatalf("Set not registered correctly after set.read")
	}

	exec(t, m, "net.train n xor 5")

	net, _ := m.Network("n")
	if net.Iteration() != 20 {
		t.Errorf("Iteration after 5 epochs of 4 records = %d, want 20", net.Iteration())
	}

	out.Reset()
	exec(t, m, "net.test n xor")
	if !strings.Contains(out.String(), "root mean square error") {
		t.Errorf("net.test output was %q", out.String())
	}

	exec(t, m, "net.make 2 3 1 wide")
	if _, err = m.Exec("net.train wide xor"); ff.KindOf(err) != ff.IncompatibleVectorSize {
		t.Errorf("Training mismatched network: error = %v", err)
	}
	if _, err = m.Exec("net.test wide xor"); ff.KindOf(err) != ff.IncompatibleVectorSize {
		t.Errorf("Testing mismatched network: error = %v", err)
	}

	for _, line := range []string{"net.train n nope", "net.test nope xor", "net.train n xor 0", "set.read " + quote(setPath) + " xor"} {
		if _, err = m.Exec(line); err == nil {
			t.Errorf("Exec(%q) succeeded, expected an error", line)
		}
	}
}

func TestSaveAndRead(t *testing.T) {
	dir := t.TempDir()
	netPath := filepath.Join(dir, "a.net")
	layPath := filepath.Join(dir, "a.lay")

	m, _ := newTestManager()
	exec(t, m, "net.make 2 3 2 a")

	if _, err := m.Exec("net.save a"); err == nil {
		t.Errorf("net.save without a source file succeeded")
	}

	exec(t, m, "net.save.as a "+quote(netPath))
	if src, _ := m.Source("a"); src != netPath {
		t.Errorf("Source after net.save.as = %q, want %q", src, netPath)
	}

	// the first save.as sets the source, later ones don't
	exec(t, m, "net.save.as a "+quote(layPath))
	if src, _ := m.Source("a"); src != netPath {
		t.Errorf("Source after second net.save.as = %q, want %q", src, netPath)
	}

	exec(t, m, "net.read "+quote(netPath)+" b")
	exec(t, m, "net.read "+quote(layPath)+" c")

	a, _ := m.Network("a")
	b, _ := m.Network("b")
	if a.Neuron(1, 1).Weight(2) != b.Neuron(1, 1).Weight(2) {
		t.Errorf("Weights of network read from file differ")
	}

	if src, _ := m.Source("c"); src != layPath {
		t.Errorf("Source after net.read = %q, want %q", src, layPath)
	}

	if _, err := m.Exec("net.set.source a " + quote(filepath.Join(dir, "a.txt"))); ff.KindOf(err) != ff.UnsupportedExtension {
		t.Errorf("net.set.source with .txt: error = %v", err)
	}

	exec(t, m, "net.set.source a "+quote(layPath))
	exec(t, m, "net.save a")

	bad := []string{
		"net.read " + quote(filepath.Join(dir, "missing.net")) + " d",
		"net.read " + quote(netPath) + " a",
		"net.save.as a " + quote(filepath.Join(dir, "a.set")),
	}

	for _, line := range bad {
		if _, err := m.Exec(line); err == nil {
			t.Errorf("Exec(%q) succeeded, expected an error", line)
		}
	}

	if _, ok := m.Network("d"); ok {
		t.Errorf("Network registered after failed net.read")
	}
}

func TestRemoveAndList(t *testing.T) {
	m, out := newTestManager()

	exec(t, m, "list.networks")
	exec(t, m, "list.sets")
	if !strings.Contains(out.String(), "No networks are there.") || !strings.Contains(out.String(), "No sets are there.") {
		t.Errorf("Empty listings were %q", out.String())
	}

	exec(t, m, "net.make 2 1 1 first")
	exec(t, m, "net.make 2 1 1 second")

	out.Reset()
	exec(t, m, "list.sources")
	if !strings.Contains(out.String(), " + first (no source file)") {
		t.Errorf("list.sources output was %q", out.String())
	}

	exec(t, m, "net.remove first")
	if _, ok := m.Network("first"); ok {
		t.Errorf("Network still present after net.remove")
	}

	out.Reset()
	exec(t, m, "list.networks")
	if strings.Contains(out.String(), "first") || !strings.Contains(out.String(), " + second") {
		t.Errorf("list.networks after removal was %q", out.String())
	}

	for _, line := range []string{"net.remove first", "set.remove nope", "set.print nope", "net.print first"} {
		if _, err := m.Exec(line); err == nil {
			t.Errorf("Exec(%q) succeeded, expected an error", line)
		}
	}

	// the name can be reused
	exec(t, m, "net.make 2 1 1 first")
}

func TestPrint(t *testing.T) {
	m, out := newTestManager()
	exec(t, m, "net.make 2 1 1 n")

	out.Reset()
	exec(t, m, "net.print n")

	for _, want := range []string{"Network n", "Layout: [1 1]", "weights in [0.25, 0.25]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("net.print output %q does not contain %q", out.String(), want)
		}
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	m := New(&out, Config{RNG: initializers.Constant(0.5), Prompt: "> "})

	input := strings.Join([]string{
		"help",
		"",
		"bogus",
		"net.make 2 1 1 n",
		"end",
		"net.make 2 1 1 after",
	}, "\n")

	if err := m.Run(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	s := out.String()
	if !strings.Contains(s, "net.train") {
		t.Errorf("help output missing commands: %q", s)
	}
	if !strings.Contains(s, `Error: Unknown command "bogus"`) {
		t.Errorf("Unknown command not reported: %q", s)
	}
	if _, ok := m.Network("n"); !ok {
		t.Errorf("Command before end was not executed")
	}
	if _, ok := m.Network("after"); ok {
		t.Errorf("Command after end was executed")
	}
	if !m.Ended() {
		t.Errorf("Ended() = false after end")
	}

	// a second source after end is not read
	if err := m.Run(strings.NewReader("net.make 2 1 1 later")); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Network("later"); ok {
		t.Errorf("Run after end executed a command")
	}

	// input ending without "end" is fine, and the session continues
	fresh, _ := newTestManager()
	if err := fresh.Run(strings.NewReader("net.make 2 1 1 n")); err != nil {
		t.Errorf("Run without end: %v", err)
	}
	if fresh.Ended() {
		t.Errorf("Ended() = true after input without end")
	}
	if err := fresh.Run(strings.NewReader("net.make 2 1 1 m")); err != nil {
		t.Fatal(err)
	}
	if _, ok := fresh.Network("m"); !ok {
		t.Errorf("Second source was not run")
	}
}
