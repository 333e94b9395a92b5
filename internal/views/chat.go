package views

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
)

// ChatView runs the assistant conversation loop. The transcript is
// ephemeral view state, discarded when the view exits.
type ChatView struct {
	assistant interfaces.Assistant
}

// NewChatView creates a chat view over an assistant.
func NewChatView(assistant interfaces.Assistant) *ChatView {
	return &ChatView{assistant: assistant}
}

// Run reads prompts line by line until EOF or "exit", printing each reply.
func (v *ChatView) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if greeter, ok := v.assistant.(*ScriptedAssistant); ok {
		printMessage(out, greeter.Greeting())
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}
		if prompt == "exit" || prompt == "quit" {
			break
		}

		reply, err := v.assistant.Reply(ctx, prompt)
		if err != nil {
			fmt.Fprintf(out, "assistant error: %v\n", err)
			continue
		}
		printMessage(out, reply)
	}
	return scanner.Err()
}

func printMessage(out io.Writer, msg *models.ChatMessage) {
	fmt.Fprintf(out, "\n%s\n", msg.Content)
	if len(msg.Suggestions) > 0 {
		fmt.Fprintln(out, "\nSuggestions:")
		for _, s := range msg.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
	fmt.Fprintln(out)
}
