package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct{ Service *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Service: s} }

// cartToken อ่าน token จาก header; ถ้ายังไม่มี server ออกให้ใหม่
// token ส่งกลับใน response header ทุกครั้ง FE เก็บไว้ใช้ต่อ
func cartToken(c *gin.Context) string {
	token := c.GetHeader("X-Cart-Token")
	if token == "" {
		token = uuid.NewString()
	}
	c.Header("X-Cart-Token", token)
	return token
}

// GET /cart
func (cc *CartController) Get(c *gin.Context) {
	view, err := cc.Service.Get(cartToken(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/items
func (cc *CartController) AddItem(c *gin.Context) {
	token := cartToken(c)

	var in services.AddToCartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := cc.Service.Add(token, &in)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, view)
}

type updateQtyReq struct {
	Qty int `json:"qty"`
}

// PATCH /cart/items/:id — qty <= 0 ลบ line ทิ้ง
func (cc *CartController) UpdateQty(c *gin.Context) {
	token := cartToken(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	var req updateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := cc.Service.UpdateQty(token, uint(id), req.Qty)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, view)
}

// DELETE /cart/items/:id
func (cc *CartController) RemoveItem(c *gin.Context) {
	token := cartToken(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid item id")
		return
	}
	view, err := cc.Service.Remove(token, uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// DELETE /cart
func (cc *CartController) Clear(c *gin.Context) {
	token := cartToken(c)
	if err := cc.Service.Clear(token); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
