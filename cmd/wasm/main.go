//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"lexis/internal/adapter/analyzer"
	"lexis/internal/adapter/fs"
	"lexis/internal/adapter/memstore"
	"lexis/internal/logging"
	"lexis/internal/usecase"
)

var (
	analyze *usecase.AnalyzeUseCase
	library *usecase.LibraryUseCase
)

// The browser build uses the rule-based backend; it needs no model data.
func init() {
	analyze = usecase.NewAnalyzeUseCase(analyzer.NewBasicNLP())
	resetLibrary()
}

func resetLibrary() {
	library = usecase.NewLibraryUseCase(memstore.NewMemoryStore(), analyze, fs.NewTextReader(), analyzer.BasicName, logging.Discard())
}

func main() {
	c := make(chan struct{})

	js.Global().Set("lexisAnalyze", js.FuncOf(analyzeText))
	js.Global().Set("lexisRank", js.FuncOf(rankWord))
	js.Global().Set("lexisAdd", js.FuncOf(addDocument))
	js.Global().Set("lexisAnalyzeDoc", js.FuncOf(analyzeDocument))
	js.Global().Set("lexisList", js.FuncOf(listDocuments))
	js.Global().Set("lexisClear", js.FuncOf(clearLibrary))

	<-c
}

func analyzeText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: lexisAnalyze(text, [word])")
	}

	target := ""
	if len(args) > 1 {
		target = args[1].String()
	}

	report, err := analyze.AnalyzeCombined(context.Background(), args[0].String(), target)
	if err != nil {
		return makeError("analysis failed: " + err.Error())
	}
	return makeResult(report)
}

func rankWord(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: lexisRank(text, word)")
	}

	rank, err := analyze.Lookup(context.Background(), args[0].String(), args[1].String())
	if err != nil {
		return makeError("lookup failed: " + err.Error())
	}
	return makeResult(rank)
}

func addDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: lexisAdd(title, text)")
	}

	doc, added, err := library.AddText(args[0].String(), "", args[1].String())
	if err != nil {
		return makeError("add failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"document": doc,
		"added":    added,
	})
}

func analyzeDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: lexisAnalyzeDoc(id, [word])")
	}

	target := ""
	if len(args) > 1 {
		target = args[1].String()
	}

	saved, _, err := library.Analyze(context.Background(), args[0].String(), target, false)
	if err != nil {
		return makeError("analysis failed: " + err.Error())
	}
	return makeResult(saved)
}

func listDocuments(this js.Value, args []js.Value) interface{} {
	docs, err := library.List()
	if err != nil {
		return makeError("list failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"documents": docs,
	})
}

func clearLibrary(this js.Value, args []js.Value) interface{} {
	resetLibrary()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
