package ocr

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/common"
)

// stubRunner fakes pdftoppm (by creating the rendered file) and tesseract.
type stubRunner struct {
	tsv          string
	tesseractErr error
	calls        int
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	switch name {
	case "pdftoppm":
		// the engine globs <prefix>-*.png afterwards
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+"-1.png", []byte("png"), 0o644); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	case "tesseract":
		s.calls++
		if s.tesseractErr != nil {
			return nil, []byte("engine busy"), s.tesseractErr
		}
		return []byte(s.tsv), nil, nil
	}
	return nil, nil, errors.New("unexpected binary " + name)
}

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t2550\t3300\t-1\t\n" +
	"4\t1\t1\t1\t1\t0\t200\t300\t2000\t80\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t200\t300\t400\t80\t96\tCAS\n" +
	"5\t1\t1\t1\t1\t2\t650\t300\t500\t80\t91\tNo:\n" +
	"5\t1\t1\t1\t1\t3\t1200\t300\t700\t80\t88\t67-64-1\n" +
	"5\t1\t1\t1\t2\t1\t200\t450\t600\t80\t72\tAcetone\n"

func newTestEngine(r *stubRunner, retries int) *Engine {
	return NewEngine(Config{
		MaxRetries:  retries,
		Backoff:     time.Millisecond,
		Concurrency: 1,
		DPI:         300,
	}, r, nil)
}

func TestParseTSVGroupsLines(t *testing.T) {
	blocks, err := parseTSV(sampleTSV, 0, 72.0/300, 72.0/300)
	if err != nil {
		t.Fatalf("parseTSV: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want one per TSV line group", len(blocks))
	}
	first := blocks[0]
	if first.Text != "CAS No: 67-64-1" {
		t.Errorf("text = %q", first.Text)
	}
	if len(first.Tokens) != 3 {
		t.Fatalf("tokens = %d", len(first.Tokens))
	}
	if got := first.Tokens[0].Confidence; got < 0.95 || got > 0.97 {
		t.Errorf("confidence = %v, want 96%% scaled to 0.96", got)
	}
	if first.Source != constants.SourceOCR {
		t.Errorf("source = %q", first.Source)
	}
	// pixel boxes scaled back to page points: 200px at 300dpi = 48pt
	if x := first.Tokens[0].Box.X0; x < 47.9 || x > 48.1 {
		t.Errorf("X0 = %v, want 48pt", x)
	}
	if blocks[1].Text != "Acetone" {
		t.Errorf("second block = %q", blocks[1].Text)
	}
}

func TestParseTSVSkipsStructuralRows(t *testing.T) {
	blocks, err := parseTSV(sampleTSV, 0, 1, 1)
	if err != nil {
		t.Fatalf("parseTSV: %v", err)
	}
	for _, b := range blocks {
		for _, tok := range b.Tokens {
			if tok.Text == "" {
				t.Error("structural rows must not become tokens")
			}
		}
	}
}

func TestRecognizePageSuccess(t *testing.T) {
	r := &stubRunner{tsv: sampleTSV}
	e := newTestEngine(r, 2)

	res := e.RecognizePage(context.Background(), "scan.pdf", 0, 612, 792)
	if res.Failed {
		t.Fatalf("failed: %v", res.Err)
	}
	if res.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", res.Attempts)
	}
	if len(res.Blocks) != 2 {
		t.Errorf("blocks = %d", len(res.Blocks))
	}
}

func TestRecognizePageRetryExhaustion(t *testing.T) {
	r := &stubRunner{tesseractErr: errors.New("resource exhausted")}
	e := newTestEngine(r, 2)

	res := e.RecognizePage(context.Background(), "scan.pdf", 3, 612, 792)
	if !res.Failed {
		t.Fatal("exhausted retries must mark the page failed")
	}
	if res.Attempts != 3 {
		t.Errorf("attempts = %d, want initial try plus 2 retries", res.Attempts)
	}
	if r.calls != 3 {
		t.Errorf("tesseract calls = %d, want 3", r.calls)
	}
	if !errors.Is(res.Err, common.ErrPageOCRFailed) {
		t.Errorf("err = %v, want ErrPageOCRFailed", res.Err)
	}
	if len(res.Blocks) != 0 {
		t.Error("a failed page contributes no tokens")
	}
}

func TestRecognizePageCancellation(t *testing.T) {
	r := &stubRunner{tesseractErr: errors.New("slow")}
	e := newTestEngine(r, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := e.RecognizePage(ctx, "scan.pdf", 0, 612, 792)
	if !res.Failed {
		t.Fatal("cancelled page must fail")
	}
	if r.calls > 1 {
		t.Errorf("calls = %d, cancellation must not burn retries", r.calls)
	}
}

func TestCleanOCRWordDropsBoxNoise(t *testing.T) {
	cases := map[string]string{
		"____":    "",
		"|||":     "",
		"---":     "",
		"67-64-1": "67-64-1",
		"CAS":     "CAS",
	}
	for in, want := range cases {
		if got := cleanOCRWord(in); got != want {
			t.Errorf("cleanOCRWord(%q) = %q, want %q", in, got, want)
		}
	}
}
