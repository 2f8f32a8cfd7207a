package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"media-uploader/pkg/helper"
)

// Basit test client'ı: dosyayı async yükler, operasyon terminal aşamaya
// gelene kadar status endpoint'ini poll eder.
func main() {
	server := flag.String("server", "http://localhost:3000", "server adresi")
	filePath := flag.String("file", "", "yüklenecek dosya")
	kind := flag.String("kind", "", "upload türü: image, video, file (boşsa uzantıdan seçilir)")
	owner := flag.String("owner", "test-client", "owner id")
	category := flag.String("category", "", "kategori / klasör")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("Kullanım: client -file <path> [-kind image|video|file]")
	}
	if *kind == "" {
		*kind = kindFromExtension(*filePath)
	}

	opID, err := submit(*server, *filePath, *kind, *owner, *category)
	if err != nil {
		log.Fatalf("Upload başarısız: %v", err)
	}
	fmt.Println("Operation ID:", opID)

	for {
		time.Sleep(2 * time.Second)

		stage, progress, err := pollStatus(*server, opID)
		if err != nil {
			log.Printf("Status alınamadı: %v", err)
			continue
		}
		fmt.Printf("stage=%s progress=%v\n", stage, progress)

		if stage == "completed" || stage == "failed" {
			return
		}
	}
}

func kindFromExtension(filePath string) string {
	switch {
	case helper.IsImageFile(filePath):
		return "image"
	case helper.IsVideoFile(filePath):
		return "video"
	default:
		return "file"
	}
}

func submit(server, filePath, kind, owner, category string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	writer.WriteField("async", "true")
	if category != "" {
		writer.WriteField("category", category)
		writer.WriteField("folder", category)
	}
	writer.Close()

	url := fmt.Sprintf("%s/api/v1/upload/%s", server, kind)
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Owner-ID", owner)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var accepted struct {
		OperationID string `json:"operation_id"`
	}
	if err := json.Unmarshal(body, &accepted); err != nil {
		return "", err
	}
	return accepted.OperationID, nil
}

func pollStatus(server, opID string) (string, interface{}, error) {
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/upload/operations/%s", server, opID))
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	var status struct {
		Operation struct {
			Stage  string      `json:"stage"`
			Result interface{} `json:"result"`
		} `json:"operation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", nil, err
	}
	return status.Operation.Stage, status.Operation.Result, nil
}
