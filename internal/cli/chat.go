package cli

import (
	"context"
	"fmt"
)

// Ask sends one question to the assistant and prints the reply.
func (a *App) Ask(ctx context.Context) error {
	message, err := getSimpleText(a.reader, "Your question", a.out)
	if err != nil {
		return err
	}

	reply, err := a.chat.Ask(ctx, message)
	if err != nil {
		fmt.Fprintln(a.out, "No answer:", err)
		return err
	}
	fmt.Fprintln(a.out, reply)
	return nil
}
