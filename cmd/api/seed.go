package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pets-api/internal/adapters/storage"
	"pets-api/internal/domain/pets"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short:       "Insert the sample pets into the configured store",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{storeAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			repo, closeStore, err := storage.Open(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			n, err := seedPets(ctx, pets.NewService(repo), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			a.log.Info("seed done", map[string]any{"inserted": n})
			return nil
		},
	}
}

func samplePets() []pets.PetRequest {
	p := func(name, species string, age int, owner string) pets.PetRequest {
		return pets.PetRequest{Name: name, Species: species, Age: &age, OwnerName: &owner}
	}
	return []pets.PetRequest{
		p("Max", "Dog", 3, "John Doe"),
		p("Bella", "Cat", 2, "Jane Smith"),
		p("Charlie", "Dog", 5, "Bob Johnson"),
		p("Luna", "Cat", 1, "Alice Brown"),
		p("Rocky", "Dog", 4, "Mike Wilson"),
		p("Mittens", "Cat", 6, "Sarah Davis"),
		p("Buddy", "Dog", 7, "Tom Anderson"),
	}
}

// seedPets inserta por el Service (no directo al repo) y corta en el primer error.
func seedPets(ctx context.Context, svc *pets.Service, out io.Writer) (int, error) {
	n := 0
	for _, req := range samplePets() {
		created, err := svc.Create(ctx, req)
		if err != nil {
			return n, fmt.Errorf("seed %s: %w", req.Name, err)
		}
		n++
		fmt.Fprintf(out, "created %d %s (%s)\n", *created.ID, created.Name, created.Species)
	}
	return n, nil
}
