package docfill

import (
	"reflect"
	"testing"
)

func TestDocument_Tokens(t *testing.T) {
	body := para(run("Dear {{NAME}},")) +
		tableOf(para(run("amount: {{FULL_"), run("AMOUNT}}"))) +
		para(run("again {{NAME}}"))
	header := para(run("No. {{CASE_NUM}}"))
	footer := para(run("page"))
	data := documentWithHeaderFooter(t, body, header, footer)

	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	got, err := doc.Tokens()
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}

	// First-seen order, duplicates dropped, split markers reassembled.
	want := []string{"{{NAME}}", "{{FULL_AMOUNT}}", "{{CASE_NUM}}"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestDocument_Tokens_NoneFound(t *testing.T) {
	doc, _ := openBody(t, para(run("plain text, no markers")))

	got, err := doc.Tokens()
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Tokens() = %v, want none", got)
	}
}

func TestDocument_Query(t *testing.T) {
	doc, _ := openBody(t, para(run("alpha"), run("beta")))

	got, err := doc.Query("//*[local-name()='t']")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("Query() = %v, want [alpha beta]", got)
	}
}

func TestDocument_Query_InvalidExpression(t *testing.T) {
	doc, _ := openBody(t, para(run("x")))

	if _, err := doc.Query("//*[unclosed"); err == nil {
		t.Error("Query() with malformed XPath: expected error")
	}
}
