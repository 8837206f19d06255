package langdetect

import (
	"testing"
)

func BenchmarkLanguageIDByExtension(b *testing.B) {
	for range b.N {
		LanguageID("/w/src/index.jsx", nil)
	}
}

func BenchmarkLanguageIDByContent(b *testing.B) {
	code := []byte(`#!/usr/bin/env node
const path = require("path");
console.log(path.resolve("."));
`)
	b.ResetTimer()
	for range b.N {
		LanguageID("/w/bin/tool", code)
	}
}
