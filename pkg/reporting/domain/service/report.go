package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	statusPaid     = "PAID"
	bestsellerSize = 3
)

type OrderItem struct {
	BookID   uuid.UUID
	Quantity int
	Price    decimal.Decimal
}

type Order struct {
	Status     string
	TotalPrice decimal.Decimal
	Items      []OrderItem
}

type Book struct {
	ID    uuid.UUID
	Title string
	Price decimal.Decimal
}

// OrderFetcher reads orders from the order service on behalf of the caller.
type OrderFetcher interface {
	FetchOrders(token string) ([]Order, error)
}

// BookFetcher reads books from the catalog service on behalf of the caller.
type BookFetcher interface {
	FetchBooks(token string) ([]Book, error)
	FetchBook(bookID uuid.UUID, token string) (*Book, error)
}

type BookSales struct {
	BookID        uuid.UUID       `json:"bookId"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

type SalesReport struct {
	TotalBooksSold int64           `json:"totalBooksSold"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	Details        []BookSales     `json:"details"`
}

type Bestseller struct {
	BookID    uuid.UUID `json:"bookId"`
	Title     string    `json:"title"`
	TotalSold int64     `json:"totalSold"`
}

type PriceStats struct {
	MinPrice decimal.Decimal `json:"minPrice"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
}

type ReportService interface {
	SalesReport(token string) (*SalesReport, error)
	Bestsellers(token string) ([]Bestseller, error)
	PriceStats(token string) (*PriceStats, error)
}

func NewReportService(orders OrderFetcher, books BookFetcher) ReportService {
	return &reportService{orders: orders, books: books}
}

type reportService struct {
	orders OrderFetcher
	books  BookFetcher
}

func (s *reportService) SalesReport(token string) (*SalesReport, error) {
	orders, err := s.orders.FetchOrders(token)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{TotalRevenue: decimal.Zero, Details: []BookSales{}}
	perBook := map[uuid.UUID]*BookSales{}

	for _, order := range orders {
		if !strings.EqualFold(order.Status, statusPaid) {
			continue
		}

		report.TotalRevenue = report.TotalRevenue.Add(order.TotalPrice)
		for _, item := range order.Items {
			report.TotalBooksSold += int64(item.Quantity)
			revenue := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

			sales, ok := perBook[item.BookID]
			if !ok {
				sales = &BookSales{BookID: item.BookID, TotalRevenue: decimal.Zero}
				perBook[item.BookID] = sales
			}
			sales.TotalQuantity += int64(item.Quantity)
			sales.TotalRevenue = sales.TotalRevenue.Add(revenue)
		}
	}

	for _, sales := range perBook {
		report.Details = append(report.Details, *sales)
	}
	sort.Slice(report.Details, func(i, j int) bool {
		return report.Details[i].BookID.String() < report.Details[j].BookID.String()
	})
	return report, nil
}

func (s *reportService) Bestsellers(token string) ([]Bestseller, error) {
	orders, err := s.orders.FetchOrders(token)
	if err != nil {
		return nil, err
	}

	soldCount := map[uuid.UUID]int64{}
	for _, order := range orders {
		if !strings.EqualFold(order.Status, statusPaid) {
			continue
		}
		for _, item := range order.Items {
			soldCount[item.BookID] += int64(item.Quantity)
		}
	}

	ranked := make([]Bestseller, 0, len(soldCount))
	for bookID, sold := range soldCount {
		ranked = append(ranked, Bestseller{BookID: bookID, TotalSold: sold})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSold != ranked[j].TotalSold {
			return ranked[i].TotalSold > ranked[j].TotalSold
		}
		return ranked[i].BookID.String() < ranked[j].BookID.String()
	})
	if len(ranked) > bestsellerSize {
		ranked = ranked[:bestsellerSize]
	}

	for i := range ranked {
		ranked[i].Title = s.bookTitle(ranked[i].BookID, token)
	}
	return ranked, nil
}

func (s *reportService) bookTitle(bookID uuid.UUID, token string) string {
	book, err := s.books.FetchBook(bookID, token)
	if err != nil {
		log.WithFields(log.Fields{"bookId": bookID, "err": err}).Warn("failed to resolve book title")
		return "Unknown"
	}
	return book.Title
}

func (s *reportService) PriceStats(token string) (*PriceStats, error) {
	books, err := s.books.FetchBooks(token)
	if err != nil {
		return nil, err
	}

	stats := &PriceStats{MinPrice: decimal.Zero, MaxPrice: decimal.Zero, AvgPrice: decimal.Zero}
	if len(books) == 0 {
		return stats, nil
	}

	sum := decimal.Zero
	stats.MinPrice = books[0].Price
	stats.MaxPrice = books[0].Price
	for _, book := range books {
		sum = sum.Add(book.Price)
		if book.Price.LessThan(stats.MinPrice) {
			stats.MinPrice = book.Price
		}
		if book.Price.GreaterThan(stats.MaxPrice) {
			stats.MaxPrice = book.Price
		}
	}
	stats.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(books)))).Round(2)
	return stats, nil
}
