package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

// GetProducts lists the VPN plans shown on the storefront. Inactive plans
// stay hidden here but remain visible to admins.
func GetProducts(c *fiber.Ctx) error {
	var products model.Products
	if err := database.DB.
		Where("is_active = ?", true).
		Order("price asc").
		Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, products)
}

func GetProductsAdmin(c *fiber.Ctx) error {
	var products model.Products
	if err := database.DB.Order("price asc").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, products)
}

func CreateProduct(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateProductInput").(*model.CreateProductInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	product := model.Product{
		Name:          input.Name,
		Slug:          slug.Make(input.Name + " " + input.DurationLabel),
		DurationLabel: input.DurationLabel,
		Price:         input.Price,
		Description:   input.Description,
		IsActive:      true,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "A plan with this name already exists", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created",
		"data":    product,
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	input, ok := c.Locals("UpdateProductInput").(*model.UpdateProductInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REQUIRED_FIELDS, errors.New("invalid product id"))
	}

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.DurationLabel != nil {
		product.DurationLabel = *input.DurationLabel
	}
	if input.Name != nil || input.DurationLabel != nil {
		product.Slug = slug.Make(product.Name + " " + product.DurationLabel)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ADMIN_SERVER_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, product)
}
