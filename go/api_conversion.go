package recordserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	conversionhttpmapper "github.com/Apurer/recordkeeper/internal/domains/conversions/adapters/http/mapper"
	conversionsdomain "github.com/Apurer/recordkeeper/internal/domains/conversions/domain"
	conversionsports "github.com/Apurer/recordkeeper/internal/domains/conversions/ports"
)

// ConversionAPI exposes the temperature and unit formulas plus the shared calculator.
type ConversionAPI struct {
	service conversionsports.Service
}

func NewConversionAPI(service conversionsports.Service) ConversionAPI {
	return ConversionAPI{service: service}
}

// Get /v1/conversions/temperature
// Convert a temperature between celsius, fahrenheit and kelvin
func (api *ConversionAPI) ConvertTemperature(c *gin.Context) {
	value, ok := requireQueryFloat(c, "value")
	if !ok {
		return
	}
	from, to := c.Query("from"), c.Query("to")
	result, err := api.service.ConvertTemperature(c.Request.Context(), value, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversionhttpmapper.Temperature{Value: value, From: from, To: to, Result: result})
}

// Get /v1/conversions/units
// List the supported unit conversions
func (api *ConversionAPI) ListUnitConversions(c *gin.Context) {
	c.JSON(http.StatusOK, conversionsdomain.UnitConversions())
}

// Get /v1/conversions/units/:conversion
func (api *ConversionAPI) ConvertUnit(c *gin.Context) {
	value, ok := requireQueryFloat(c, "value")
	if !ok {
		return
	}
	conversion := c.Param("conversion")
	result, err := api.service.ConvertUnit(c.Request.Context(), conversion, value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversionhttpmapper.Unit{Conversion: conversion, Value: value, Result: result})
}

// Post /v1/calculator/:op
// Apply add, subtract, multiply or divide to two operands
func (api *ConversionAPI) Calculate(c *gin.Context) {
	var payload conversionhttpmapper.Operands
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	op := conversionsdomain.Operator(c.Param("op"))
	result, err := api.service.Calculate(c.Request.Context(), op, *payload.A, *payload.B)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversionhttpmapper.Calculation{Operator: string(op), A: *payload.A, B: *payload.B, Result: result})
}

// Get /v1/calculator/memory
func (api *ConversionAPI) RecallMemory(c *gin.Context) {
	value := api.service.RecallMemory(c.Request.Context())
	c.JSON(http.StatusOK, conversionhttpmapper.Memory{Value: &value})
}

// Put /v1/calculator/memory
func (api *ConversionAPI) StoreInMemory(c *gin.Context) {
	var payload conversionhttpmapper.Memory
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	api.service.StoreInMemory(c.Request.Context(), *payload.Value)
	c.JSON(http.StatusOK, payload)
}

// Delete /v1/calculator/memory
func (api *ConversionAPI) ClearMemory(c *gin.Context) {
	api.service.ClearMemory(c.Request.Context())
	c.Status(http.StatusNoContent)
}
