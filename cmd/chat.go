package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/willimj3/bella-document-review/internal/chat"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/internal/store"
)

// chatLoop answers questions about the extraction grid until EOF or "exit".
// Each turn rebuilds the data context from the session, so answers reflect
// the current results and document selection. A failed call is printed inline
// and the loop continues; only successful turns enter the history.
func chatLoop(ctx context.Context, in io.Reader, out io.Writer, analyst *chat.Analyst, session *store.Session, maxContextChars int) error {
	fmt.Fprintln(out, `Ask questions about the extracted data ("exit" to quit).`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		docs := session.SelectedDocuments()
		dataContext := chat.BuildContext(docs, session.Columns(), session.Results(),
			session.HasDocumentSelection(), maxContextChars)

		answer, err := analyst.Ask(ctx, question, dataContext, session.ChatHistory())
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", err)
			continue
		}

		session.AddChatMessage(model.RoleUser, question)
		session.AddChatMessage(model.RoleAssistant, answer)
		fmt.Fprintln(out, answer)
	}
	return scanner.Err()
}
