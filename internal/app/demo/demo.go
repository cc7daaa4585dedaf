// Package demo walks every bounded context through a short scripted session and
// prints what happened. It backs the recordctl demo command.
package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/app/api"
	bookstypes "github.com/Apurer/recordkeeper/internal/domains/books/application/types"
	booksdomain "github.com/Apurer/recordkeeper/internal/domains/books/domain"
	productstypes "github.com/Apurer/recordkeeper/internal/domains/products/application/types"
	studentstypes "github.com/Apurer/recordkeeper/internal/domains/students/application/types"
	ticketstypes "github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	ticketsports "github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
)

var sampleBooks = []bookstypes.AddBookInput{
	{
		Title:           "The Great Gatsby",
		Author:          "F. Scott Fitzgerald",
		ISBN:            "978-0123456789",
		Price:           decimal.RequireFromString("14.99"),
		PublicationDate: time.Date(1925, 4, 10, 0, 0, 0, 0, time.UTC),
		Description:     "A story of the fabulously wealthy Jay Gatsby and his love for the beautiful Daisy Buchanan.",
		Rating:          4.5,
		StockQuantity:   25,
	},
	{
		Title:           "To Kill a Mockingbird",
		Author:          "Harper Lee",
		ISBN:            "978-0987654321",
		Price:           decimal.RequireFromString("12.99"),
		PublicationDate: time.Date(1960, 7, 11, 0, 0, 0, 0, time.UTC),
		Description:     "The story of young Scout Finch and her father Atticus in a racially divided Southern town.",
		Rating:          4.8,
		StockQuantity:   30,
	},
	{
		Title:           "1984",
		Author:          "George Orwell",
		ISBN:            "978-1234567890",
		Price:           decimal.RequireFromString("11.99"),
		PublicationDate: time.Date(1949, 6, 8, 0, 0, 0, 0, time.UTC),
		Description:     "A dystopian novel about totalitarianism and surveillance.",
		Rating:          4.6,
		StockQuantity:   20,
	},
}

// Run executes the scripted session against services and writes a transcript to out.
// checkout may be nil, in which case the ticket is completed step by step.
func Run(ctx context.Context, out io.Writer, services api.Services, checkout ticketsports.CheckoutOrchestrator) error {
	steps := []func(context.Context, io.Writer, api.Services, ticketsports.CheckoutOrchestrator) error{
		books, students, tickets, products, conversions,
	}
	for _, step := range steps {
		if err := step(ctx, out, services, checkout); err != nil {
			return err
		}
	}
	return nil
}

func books(ctx context.Context, out io.Writer, s api.Services, _ ticketsports.CheckoutOrchestrator) error {
	fmt.Fprintln(out, "Adding sample books...")
	added := make([]*booksdomain.Book, 0, len(sampleBooks))
	for _, input := range sampleBooks {
		book, err := s.Books.AddBook(ctx, input)
		if err != nil {
			return fmt.Errorf("add %q: %w", input.Title, err)
		}
		added = append(added, book)
	}

	list, err := s.Books.ListAvailableBooks(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nAll available books:")
	for _, b := range list {
		fmt.Fprintf(out, "%s by %s - Rating: %.1f, Price: $%s\n", b.Title, b.Author, b.Rating, b.Price.StringFixed(2))
	}

	rated, err := s.Books.ListBooksByRatingRange(ctx, bookstypes.RatingRange{Min: 4.0, Max: 5.0})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nHighly rated books (4.0+ stars):")
	for _, b := range rated {
		fmt.Fprintf(out, "%s by %s - Rating: %.1f\n", b.Title, b.Author, b.Rating)
	}

	first := added[0]
	fmt.Fprintf(out, "\nUpdating stock quantity for %s...\n", first.Title)
	if _, err := s.Books.UpdateStockQuantity(ctx, first.ID, 50); err != nil {
		return err
	}

	const isbn = "978-0123456789"
	fmt.Fprintf(out, "\nLooking up book by ISBN: %s\n", isbn)
	found, err := s.Books.GetBookByISBN(ctx, isbn)
	if err != nil {
		return err
	}
	if found != nil {
		fmt.Fprintf(out, "Found: %s by %s\n", found.Title, found.Author)
	}

	fmt.Fprintln(out, "\nSoft deleting a book...")
	if _, err := s.Books.DeleteBook(ctx, added[1].ID); err != nil {
		return err
	}
	list, err = s.Books.ListAvailableBooks(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nRemaining available books:")
	for _, b := range list {
		fmt.Fprintf(out, "%s by %s - Stock: %d\n", b.Title, b.Author, b.StockQuantity)
	}
	return nil
}

func students(ctx context.Context, out io.Writer, s api.Services, _ ticketsports.CheckoutOrchestrator) error {
	fmt.Fprintln(out, "\nEnrolling students...")
	for _, input := range []studentstypes.AddStudentInput{
		{FirstName: "Grace", LastName: "Hopper", Email: "grace.hopper@school.test", GPA: 3.9},
		{FirstName: "Alan", LastName: "Turing", Email: "alan.turing@school.test", GPA: 3.7},
		{FirstName: "Edsger", LastName: "Dijkstra", Email: "edsger.dijkstra@school.test", GPA: 3.2},
	} {
		if _, err := s.Students.AddStudent(ctx, input); err != nil {
			return fmt.Errorf("enroll %s %s: %w", input.FirstName, input.LastName, err)
		}
	}
	honors, err := s.Students.ListStudentsByGPARange(ctx, studentstypes.GPARange{Min: 3.5, Max: 4.0})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nHonor roll (GPA 3.5+):")
	for _, st := range honors {
		fmt.Fprintf(out, "%s %s - GPA: %.2f\n", st.FirstName, st.LastName, st.GPA)
	}
	return nil
}

func tickets(ctx context.Context, out io.Writer, s api.Services, checkout ticketsports.CheckoutOrchestrator) error {
	fmt.Fprintln(out, "\nOpening a sales ticket...")
	discount := decimal.RequireFromString("5.00")
	tax := decimal.RequireFromString("7.20")
	ticket, err := s.Tickets.CreateTicket(ctx, ticketstypes.CreateTicketInput{
		CustomerName:        "Acme Corp",
		SalesRepresentative: "Jordan",
		TotalAmount:         decimal.RequireFromString("90.00"),
		DiscountAmount:      &discount,
		TaxAmount:           &tax,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Ticket %s for %s - Net: $%s\n", ticket.TicketNumber, ticket.CustomerName, ticket.NetAmount().StringFixed(2))

	if checkout != nil {
		if ticket, err = checkout.CheckoutTicket(ctx, ticket.ID); err != nil {
			return err
		}
	} else {
		for _, step := range []func(context.Context, int64) (bool, error){
			s.Tickets.MarkTicketAsPaid, s.Tickets.StartTicket, s.Tickets.CompleteTicket,
		} {
			if _, err := step(ctx, ticket.ID); err != nil {
				return err
			}
		}
		if ticket, err = s.Tickets.GetTicketByID(ctx, ticket.ID); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Ticket %s is %s, paid: %t\n", ticket.TicketNumber, ticket.Status, ticket.IsPaid)

	day := ticket.CreatedDate
	total, err := s.Tickets.TotalSales(ctx, ticketstypes.DateRange{Start: day.Add(-24 * time.Hour), End: day.Add(24 * time.Hour)})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Sales today: $%s\n", total.StringFixed(2))
	return nil
}

func products(ctx context.Context, out io.Writer, s api.Services, _ ticketsports.CheckoutOrchestrator) error {
	fmt.Fprintln(out, "\nStocking products...")
	for _, input := range []productstypes.CreateProductInput{
		{Name: "Desk Lamp", Price: decimal.RequireFromString("39.99"), StockQuantity: 12},
		{Name: "Notebook", Price: decimal.RequireFromString("4.50"), StockQuantity: 200},
	} {
		if _, err := s.Products.CreateProduct(ctx, input); err != nil {
			return fmt.Errorf("create %q: %w", input.Name, err)
		}
	}
	updated, err := s.Products.ApplyDiscountToAll(ctx, decimal.NewFromInt(10))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Applied a 10%% discount to %d products:\n", updated)
	all, err := s.Products.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range all {
		fmt.Fprintf(out, "%s - $%s\n", p.Name, p.Price.StringFixed(2))
	}
	return nil
}

func conversions(ctx context.Context, out io.Writer, s api.Services, _ ticketsports.CheckoutOrchestrator) error {
	fmt.Fprintln(out, "\nConversions:")
	f, err := s.Conversions.ConvertTemperature(ctx, 25, "celsius", "fahrenheit")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "25.00 C = %.2f F\n", f)
	miles, err := s.Conversions.ConvertUnit(ctx, "kilometers-to-miles", 42.195)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "42.195 km = %.2f mi\n", miles)
	product, err := s.Conversions.Calculate(ctx, "multiply", 6, 7)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "6 x 7 = %g\n", product)
	return nil
}
