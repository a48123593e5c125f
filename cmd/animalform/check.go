package main

import (
	"errors"
	"fmt"

	"github.com/pthm/animalform"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("validation failed")

func checkCmd() *cobra.Command {
	var name, pictureURL string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an animal name and picture URL",
		Example: `  animalform check --name Rex --picture-url http://example.com/rex.png
  animalform check --name "Rex 2" --picture-url x`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			animal, err := animalform.Validate(animalform.FormState{Name: name, PictureURL: pictureURL})
			if err != nil {
				var schemaErr *animalform.SchemaError
				if errors.As(err, &schemaErr) {
					for _, is := range schemaErr.Issues {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", is.Field, is.Message)
					}
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), animalform.FailureMessage(err))
				}
				return errCheckFailed
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: name=%q pictureUrl=%q\n", animal.Name, animal.PictureURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "animal name")
	cmd.Flags().StringVar(&pictureURL, "picture-url", "", "animal picture URL")
	return cmd
}
