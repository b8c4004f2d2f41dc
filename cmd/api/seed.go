package main

import (
	"context"
	"fmt"

	"shop/internal/domain/model"
	"shop/internal/repository"
)

type seedProduct struct {
	Name  string
	Price int64
}

// カテゴリ名 → 商品
var demoCatalog = []struct {
	Category string
	Products []seedProduct
}{
	{"Footwear", []seedProduct{{"Running Shoes", 8900}, {"Leather Boots", 15900}, {"Sandals", 3900}}},
	{"Home", []seedProduct{{"Bathroom Mat", 1200}, {"Desk Lamp", 4500}}},
	{"Apparel", []seedProduct{{"Cotton Socks", 500}, {"Rain Jacket", 9900}}},
}

// 同名があれば作らない
func seedCatalog(ctx context.Context, categories repository.CategoryRepository, products repository.ProductRepository) (int, error) {
	n := 0
	for _, group := range demoCatalog {
		c, err := categories.FirstOrCreate(ctx, group.Category)
		if err != nil {
			return n, fmt.Errorf("seed category %q: %w", group.Category, err)
		}
		for _, sp := range group.Products {
			if _, err := products.FirstOrCreate(ctx, model.Product{
				Name:       sp.Name,
				Price:      sp.Price,
				CategoryID: c.ID,
			}); err != nil {
				return n, fmt.Errorf("seed product %q: %w", sp.Name, err)
			}
			n++
		}
	}
	return n, nil
}
