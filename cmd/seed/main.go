package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jcloud/bookstore-backend/config"
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// 도서 목록 XLSX 컬럼 순서
// title | authors | publisher | publication_date | isbn | price |
// description | categories | stock_quantity | cover_image_url
const expectedColumns = 10

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repository 생성
	bookRepo := repository.NewBookRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	books, skipped, err := readBooksFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total books to import: %d (skipped %d rows)\n", len(books), skipped)

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := bookRepo.BulkCreate(books, batchSize); err != nil {
		log.Fatal("Failed to bulk create books:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total books imported: %d\n", len(books))
}

func readBooksFromXLSX(filePath string) ([]model.Book, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var books []model.Book
	seenISBN := make(map[string]bool) // 중복 제거용
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < expectedColumns {
			skippedCount++
			continue
		}

		title := strings.TrimSpace(row[0])
		authors := strings.TrimSpace(row[1])
		publisher := strings.TrimSpace(row[2])
		publicationDate := strings.TrimSpace(row[3])
		isbn := strings.TrimSpace(row[4])
		priceStr := strings.TrimSpace(row[5])
		description := strings.TrimSpace(row[6])
		categories := strings.TrimSpace(row[7])
		stockStr := strings.TrimSpace(row[8])
		coverImageURL := strings.TrimSpace(row[9])

		// 필수 항목 검사
		if title == "" || authors == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			stock = 0
		}

		// ISBN 중복 제거
		if isbn != "" {
			if seenISBN[isbn] {
				skippedCount++
				continue
			}
			seenISBN[isbn] = true
		}

		books = append(books, model.Book{
			Title:           title,
			Authors:         authors,
			Publisher:       publisher,
			PublicationDate: publicationDate,
			ISBN:            isbn,
			Price:           price,
			Description:     description,
			Categories:      categories,
			StockQuantity:   stock,
			CoverImageURL:   coverImageURL,
		})
	}

	return books, skippedCount, nil
}
