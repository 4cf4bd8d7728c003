package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	productstpl "finitefield.org/product-viewer/internal/viewer/templates/products"
)

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the newest snapshot with their counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCategories()
		},
	}
}

func (a *app) runCategories() error {
	result := a.newSession().Load(a.cfg.Data.Dir)
	if result.Empty() {
		fmt.Fprintln(a.out, productstpl.MessageNoData(a.cfg.Data.Dir))
		return nil
	}

	index := catalog.Categories(result.Products)
	if !index.Available {
		fmt.Fprintln(a.out, productstpl.MessageCategoryUnavailable)
		return nil
	}

	fmt.Fprintln(a.out, productstpl.CategoryLabel+" "+productstpl.CategoryTotal(index.Total))
	for _, opt := range index.Options {
		fmt.Fprintln(a.out, "  "+productstpl.CategoryOptionLabel(opt))
	}
	return nil
}
