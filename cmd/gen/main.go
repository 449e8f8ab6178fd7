package main

import (
	"storybook/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.StoryModel{},
		model.StoryElementModel{},
		model.CustomizationOptionModel{},
		model.CustomizationModel{},
		model.CustomizedBookModel{},
		model.SavedBookModel{},
		model.OrderModel{},
		model.OrderItemModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
