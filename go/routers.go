package recordserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP method and path to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	BookAPI       BookAPI
	StudentAPI    StudentAPI
	TicketAPI     TicketAPI
	ProductAPI    ProductAPI
	ConversionAPI ConversionAPI
}

// NewRouter returns a gin engine with recovery, the supplied middleware and every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine registers the routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	for _, route := range getRoutes(handleFunctions) {
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"AddBook", http.MethodPost, "/v1/books", h.BookAPI.AddBook},
		{"ListAvailableBooks", http.MethodGet, "/v1/books", h.BookAPI.ListAvailableBooks},
		{"FindBooksByRating", http.MethodGet, "/v1/books/search/rating", h.BookAPI.FindBooksByRating},
		{"GetBookByISBN", http.MethodGet, "/v1/books/isbn/:isbn", h.BookAPI.GetBookByISBN},
		{"GetBookByID", http.MethodGet, "/v1/books/:bookId", h.BookAPI.GetBookByID},
		{"UpdateBook", http.MethodPatch, "/v1/books/:bookId", h.BookAPI.UpdateBook},
		{"DeleteBook", http.MethodDelete, "/v1/books/:bookId", h.BookAPI.DeleteBook},
		{"UpdateStockQuantity", http.MethodPut, "/v1/books/:bookId/stock", h.BookAPI.UpdateStockQuantity},

		{"AddStudent", http.MethodPost, "/v1/students", h.StudentAPI.AddStudent},
		{"ListActiveStudents", http.MethodGet, "/v1/students", h.StudentAPI.ListActiveStudents},
		{"FindStudentsByGPA", http.MethodGet, "/v1/students/search/gpa", h.StudentAPI.FindStudentsByGPA},
		{"GetStudentByID", http.MethodGet, "/v1/students/:studentId", h.StudentAPI.GetStudentByID},
		{"UpdateStudent", http.MethodPatch, "/v1/students/:studentId", h.StudentAPI.UpdateStudent},
		{"DeleteStudent", http.MethodDelete, "/v1/students/:studentId", h.StudentAPI.DeleteStudent},

		{"CreateTicket", http.MethodPost, "/v1/tickets", h.TicketAPI.CreateTicket},
		{"ListTickets", http.MethodGet, "/v1/tickets", h.TicketAPI.ListTickets},
		{"TotalSales", http.MethodGet, "/v1/tickets/sales", h.TicketAPI.TotalSales},
		{"GetTicketByNumber", http.MethodGet, "/v1/tickets/number/:number", h.TicketAPI.GetTicketByNumber},
		{"GetTicketByID", http.MethodGet, "/v1/tickets/:ticketId", h.TicketAPI.GetTicketByID},
		{"UpdateTicket", http.MethodPatch, "/v1/tickets/:ticketId", h.TicketAPI.UpdateTicket},
		{"UpdateTicketStatus", http.MethodPut, "/v1/tickets/:ticketId/status", h.TicketAPI.UpdateTicketStatus},
		{"StartTicket", http.MethodPost, "/v1/tickets/:ticketId/start", h.TicketAPI.StartTicket},
		{"CompleteTicket", http.MethodPost, "/v1/tickets/:ticketId/complete", h.TicketAPI.CompleteTicket},
		{"CancelTicket", http.MethodPost, "/v1/tickets/:ticketId/cancel", h.TicketAPI.CancelTicket},
		{"MarkTicketAsPaid", http.MethodPost, "/v1/tickets/:ticketId/pay", h.TicketAPI.MarkTicketAsPaid},
		{"CheckoutTicket", http.MethodPost, "/v1/tickets/:ticketId/checkout", h.TicketAPI.CheckoutTicket},

		{"GetAllProducts", http.MethodGet, "/v1/products", h.ProductAPI.GetAllProducts},
		{"CreateProduct", http.MethodPost, "/v1/products", h.ProductAPI.CreateProduct},
		{"ApplyDiscountToAll", http.MethodPost, "/v1/products/discount", h.ProductAPI.ApplyDiscountToAll},
		{"GetProductByID", http.MethodGet, "/v1/products/:productId", h.ProductAPI.GetProductByID},
		{"UpdateProduct", http.MethodPatch, "/v1/products/:productId", h.ProductAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, "/v1/products/:productId", h.ProductAPI.DeleteProduct},
		{"ApplyDiscount", http.MethodPost, "/v1/products/:productId/discount", h.ProductAPI.ApplyDiscount},

		{"ConvertTemperature", http.MethodGet, "/v1/conversions/temperature", h.ConversionAPI.ConvertTemperature},
		{"ListUnitConversions", http.MethodGet, "/v1/conversions/units", h.ConversionAPI.ListUnitConversions},
		{"ConvertUnit", http.MethodGet, "/v1/conversions/units/:conversion", h.ConversionAPI.ConvertUnit},
		{"RecallMemory", http.MethodGet, "/v1/calculator/memory", h.ConversionAPI.RecallMemory},
		{"StoreInMemory", http.MethodPut, "/v1/calculator/memory", h.ConversionAPI.StoreInMemory},
		{"ClearMemory", http.MethodDelete, "/v1/calculator/memory", h.ConversionAPI.ClearMemory},
		{"Calculate", http.MethodPost, "/v1/calculator/:op", h.ConversionAPI.Calculate},
	}
}
