package controllers

import (
	"backend/catalog"
	"backend/entity"
	"backend/pkg/resp"

	"github.com/gin-gonic/gin"
)

type MenuController struct{ Catalog *catalog.Catalog }

func NewMenuController(cat *catalog.Catalog) *MenuController { return &MenuController{Catalog: cat} }

// GET /menu หรือ /menu?category=pita-wraps
func (mc *MenuController) List(c *gin.Context) {
	if cat := c.Query("category"); cat != "" {
		items := mc.Catalog.ItemsByCategory(entity.MenuCategory(cat))
		if items == nil {
			resp.NotFound(c, "unknown category")
			return
		}
		resp.OK(c, gin.H{
			"key":   cat,
			"name":  catalog.CategoryDisplayName(entity.MenuCategory(cat)),
			"items": items,
		})
		return
	}
	resp.OK(c, mc.Catalog.Categories())
}

// GET /menu/:id
func (mc *MenuController) Detail(c *gin.Context) {
	item, ok := mc.Catalog.ItemByID(c.Param("id"))
	if !ok {
		resp.NotFound(c, "menu item not found")
		return
	}
	resp.OK(c, item)
}
