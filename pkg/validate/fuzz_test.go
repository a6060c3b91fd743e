package validate_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// FuzzValidate checks that validation is total and deterministic and that
// every anchored position lies inside the normalized text.
func FuzzValidate(f *testing.F) {
	seeds := []string{
		"<p>Hello</p>",
		"<div>\n  <span></div>\n",
		"<br/><img src=\"a.png\">",
		"<input value=x>",
		"<a href=\"x\" title='y' data-z>t</a>",
		"<script>if (a < b) { s = \"</div>\"; }</script>",
		"<style>p > a { color: red }</style>",
		"<!DOCTYPE html>\r\n<html lang=\"en\"></html>",
		"<!-- note -->",
		"<my-widget></my-widget>",
		"<div",
		"<p \"x></p>",
		"</br>",
		"é<b>ü</b>😀",
		"\xff\xfe<p>",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	validator := validate.New(nil)

	f.Fuzz(func(t *testing.T, text string) {
		res, err := validator.Validate(context.Background(), text)
		if err != nil {
			if errors.Is(err, validate.ErrEmptyDocument) && strings.TrimSpace(text) == "" {
				return
			}
			t.Fatalf("Validate() error = %v", err)
		}

		if res.OK != (len(res.Diagnostics) == 0) {
			t.Fatalf("OK = %v with %d diagnostics", res.OK, len(res.Diagnostics))
		}

		normalized := validate.Normalize(text)
		for _, diag := range res.Diagnostics {
			if diag.Pos.IsValid() && diag.Pos.Offset > len(normalized) {
				t.Errorf("%s anchored at offset %d past end %d", diag.Code, diag.Pos.Offset, len(normalized))
			}
		}

		again, err := validator.Validate(context.Background(), text)
		if err != nil {
			t.Fatalf("second Validate() error = %v", err)
		}
		if !reflect.DeepEqual(res, again) {
			t.Errorf("validation is not deterministic")
		}
	})
}

func BenchmarkValidate(b *testing.B) {
	doc := strings.Repeat("<section class=\"a\">\n  <p>Text <em>here</em><br/></p>\n</section>\n", 200)
	validator := validate.New(nil)
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(doc)))
	for b.Loop() {
		if _, err := validator.Validate(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}
