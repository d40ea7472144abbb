package bump

import (
	"fmt"

	"github.com/zenith-sql/relkit/internal/operations"
	"github.com/zenith-sql/relkit/internal/printer"
)

// report prints the steps a (possibly partial) result completed.
func report(res *operations.Result) {
	if res == nil {
		return
	}
	printer.Println(printer.Transition(res.Project.Name, res.Old, res.New.String()))

	if res.DryRun {
		printer.PrintFaint("Dry run: nothing was written")
		return
	}
	if res.Committed {
		printer.PrintSuccess(fmt.Sprintf("Committed %s", res.New))
	}
	if res.Tagged {
		printer.PrintSuccess(fmt.Sprintf("Created tag: %s", res.Tag))
	}
	if res.Pushed {
		printer.PrintSuccess("Pushed tags")
	}
}
