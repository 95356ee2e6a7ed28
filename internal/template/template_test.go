package template

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/cabina/internal/model"
)

func TestExportParse_RoundTrip(t *testing.T) {
	t.Parallel()

	want := model.DefaultTemplate()
	for _, f := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := Export(&buf, want, f); err != nil {
			t.Fatalf("Export(%s): %v", f, err)
		}
		got, err := Parse(buf.Bytes(), f)
		if err != nil {
			t.Fatalf("Parse(%s): %v\n%s", f, err, buf.String())
		}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("%s roundtrip mismatch:\nwant: %#v\ngot:  %#v", f, want, got)
		}
	}
}

func TestExport_JSONKeepsAccents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Export(&buf, []model.Item{{ID: "1", Label: "Tripié & cables"}}, FormatJSON); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "Tripié & cables") {
		t.Fatalf("label was escaped: %s", buf.String())
	}
}

func TestParse_JSONWithComments(t *testing.T) {
	t.Parallel()

	src := `[
  // booth basics
  {"id": "a", "label": "Cámara"},
  {"label": "Flash"}, // id assigned on import
]`
	got, err := Parse([]byte(src), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []model.Item{{ID: "a", Label: "Cámara"}, {Label: "Flash"}}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %#v, got %#v", want, got)
	}
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	src := "- id: x\n  label: Impresora\n- label: Papel\n"
	got, err := Parse([]byte(src), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 || got[0].ID != "x" || got[1].Label != "Papel" {
		t.Fatalf("unexpected items: %#v", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		f    Format
		want string
	}{
		{"not an array", `{"id":"1"}`, FormatJSON, "invalid template"},
		{"missing label", `[{"id":"1"}]`, FormatJSON, "/0"},
		{"blank label", `[{"label":"   "}]`, FormatJSON, "/0/label"},
		{"numeric id", `[{"id":1,"label":"x"}]`, FormatJSON, "/0/id"},
		{"extra field", `[{"label":"x","done":true}]`, FormatJSON, "/0"},
		{"broken json", `[{"label":`, FormatJSON, "parse json"},
		{"broken yaml", "- label: [", FormatYAML, "parse yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), tc.f)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	if FormatFromPath("list.YML") != FormatYAML || FormatFromPath("list.jsonc") != FormatJSON {
		t.Fatal("FormatFromPath mismatch")
	}
	if f, err := ParseFormat("yaml"); err != nil || f != FormatYAML {
		t.Fatalf("ParseFormat(yaml) = %q, %v", f, err)
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Fatal("expected error for toml")
	}
}
