package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hospitalapp/client-go/internal/common"
)

// Root prints the banner, replays a saved auto-login if one exists and
// hands control to the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the hospital client (type 'help' for commands)")

	if user, err := a.users.AutoLogin(ctx); err == nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", user.UserName)
	} else if !errors.Is(err, common.ErrNotLoggedIn) {
		a.log.Warn(ctx, "auto-login failed", "error", err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
