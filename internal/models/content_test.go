package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestContentJSON_RawString(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`"# Hello"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Doc != nil || c.Raw != "# Hello" {
		t.Fatalf("content = %+v", c)
	}
	out, _ := json.Marshal(c)
	if string(out) != `"# Hello"` {
		t.Errorf("marshal = %s", out)
	}
}

func TestContentJSON_Document(t *testing.T) {
	in := `{"time":1,"blocks":[{"type":"paragraph","data":{"text":"hi"}}],"version":"2.28"}`
	var c Content
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Doc == nil || len(c.Doc.Blocks) != 1 || c.Doc.Blocks[0].Type != "paragraph" {
		t.Fatalf("content = %+v", c)
	}
}

func TestContentJSON_StringifiedDocument(t *testing.T) {
	in, _ := json.Marshal(`{"blocks":[{"type":"header","data":{"text":"T"}}]}`)
	var c Content
	if err := json.Unmarshal(in, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Doc == nil {
		t.Fatal("expected stringified editor data to decode as a document")
	}
}

func TestContentYAML(t *testing.T) {
	var v struct {
		A Content `yaml:"a"`
		B Content `yaml:"b"`
	}
	src := "a: plain text\nb:\n  blocks:\n    - type: paragraph\n      data:\n        text: hello\n"
	if err := yaml.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A.Raw != "plain text" {
		t.Errorf("a = %+v", v.A)
	}
	if v.B.Doc == nil || v.B.Doc.Blocks[0].Data["text"] != "hello" {
		t.Errorf("b = %+v", v.B)
	}
}

func TestEnumKnown(t *testing.T) {
	if !StatusInProgress.Known() || Status("blocked").Known() {
		t.Error("status Known mismatch")
	}
	if !FileTypePPT.Known() || FileType("zip").Known() {
		t.Error("file type Known mismatch")
	}
	if got := Strings(Priorities); len(got) != 3 || got[0] != "low" {
		t.Errorf("Strings = %v", got)
	}
}
