package report

import (
	"bytes"
	"flag"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/miku/brcstat/internal/measure"
)

func TestMean(t *testing.T) {
	cases := []struct {
		name       string
		sum, count int64
		truncate   int64
		round      int64
	}{
		{"exact", 300, 2, 150, 150},
		{"single", -55, 1, -55, -55},
		{"1.0 and 1.5", 25, 2, 12, 13},
		{"-1.0 and -1.5", -25, 2, -12, -13},
		{"one third", 10, 3, 3, 3},
		{"two thirds", 20, 3, 6, 7},
		{"minus two thirds", -20, 3, -6, -7},
		{"small negative", -1, 3, 0, 0},
		{"zero", 0, 7, 0, 0},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.sum, tt.count, Truncate); got != tt.truncate {
				t.Errorf("Mean(%d, %d, Truncate) = %d, want %d", tt.sum, tt.count, got, tt.truncate)
			}
			if got := Mean(tt.sum, tt.count, Round); got != tt.round {
				t.Errorf("Mean(%d, %d, Round) = %d, want %d", tt.sum, tt.count, got, tt.round)
			}
		})
	}
}

func TestPolicyFlag(t *testing.T) {
	var p Policy
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&p, "mean", "")
	if err := fs.Parse([]string{"-mean", "round"}); err != nil {
		t.Fatal(err)
	}
	if p != Round || p.String() != "round" {
		t.Errorf("p = %v", p)
	}
	if err := p.Set("median"); err == nil {
		t.Errorf("Set(median): expected error")
	}
	if Truncate.String() != "truncate" {
		t.Errorf("Truncate.String() = %q", Truncate.String())
	}
}

func TestWrite(t *testing.T) {
	oslo := measure.New("Oslo")
	oslo.Add(-55)
	paris := measure.New("Paris")
	paris.Add(100)
	paris.Add(200)
	empty := measure.New("Nowhere")

	var buf bytes.Buffer
	if err := Write(&buf, []*measure.Measurements{oslo, paris, empty}, Truncate); err != nil {
		t.Fatal(err)
	}
	want := "Oslo;-5.5;-5.5;-5.5\nParis;10.0;15.0;20.0\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() mismatch:\n%v", diff.LineDiff(want, got))
	}
}

func TestWritePolicy(t *testing.T) {
	m := measure.New("Lima")
	m.Add(10)
	m.Add(15)
	for p, want := range map[Policy]string{
		Truncate: "Lima;1.0;1.2;1.5\n",
		Round:    "Lima;1.0;1.3;1.5\n",
	} {
		if got := string(AppendLine(nil, m, p)); got != want {
			t.Errorf("%v: got %q, want %q", p, got, want)
		}
	}
}
