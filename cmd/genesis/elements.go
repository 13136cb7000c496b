package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/genesis/internal/catalog"
)

var flagRecipes bool

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List all elements",
	Long: `Shows every element in the catalog. With --recipes, also prints the
combination table (spoilers).`,
	Args: cobra.NoArgs,
	Run:  runElements,
}

func init() {
	elementsCmd.Flags().BoolVar(&flagRecipes, "recipes", false, "Also list the recipes")
}

func runElements(_ *cobra.Command, _ []string) {
	fmt.Println("Elements:")
	fmt.Println()

	fmt.Printf("  %-4s  %-8s  %s\n", "ID", "Name", "Start")
	fmt.Printf("  %-4s  %-8s  %s\n", "--", "----", "-----")
	for _, d := range catalog.Definitions() {
		start := ""
		if d.DiscoveredByDefault {
			start = "yes"
		}
		fmt.Printf("  %-4s  %-8s  %s\n", d.ID, d.Name, start)
	}

	if !flagRecipes {
		fmt.Println()
		fmt.Println("Run 'genesis elements --recipes' to see how they combine.")
		return
	}

	fmt.Println()
	fmt.Println("Recipes:")
	fmt.Println()
	for _, r := range catalog.Recipes() {
		fmt.Printf("  %-8s + %-8s = %s\n", catalog.Name(r.A), catalog.Name(r.B), catalog.Name(r.Result))
	}
}
