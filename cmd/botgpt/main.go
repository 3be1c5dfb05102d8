// Package main is the entry point for the BOT-GPT service.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt"

	// 注册 LLM 供应商
	_ "github.com/NikhilAnand12/BOT-GPT/pkg/llm/huggingface"
	_ "github.com/NikhilAnand12/BOT-GPT/pkg/llm/ollama"
	_ "github.com/NikhilAnand12/BOT-GPT/pkg/llm/openai"
)

func main() {
	if err := botgpt.NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
