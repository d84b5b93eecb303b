package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"backend_inventaire/models"
)

// ExportService produit les exports d'inventaire (Excel, CSV, PDF)
type ExportService struct{}

// NewExportService crée une nouvelle instance d'ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

var colonnesExport = []string{
	"Asset Tag", "Nom", "Fabricant", "Modèle", "Catégorie", "Statut",
	"Établissement", "Localisation", "N° de série", "IP", "MAC", "Hostname",
	"Date d'achat", "Fin de garantie", "Prix",
}

// ligneExport aplatit un équipement et ses relations en colonnes texte
func ligneExport(e *models.Equipement) []string {
	ligne := []string{e.AssetTag, e.Nom, "", "", "", "", "", "", e.Serial, e.IP, e.MAC, e.Hostname, "", "", ""}
	if e.Modele != nil {
		ligne[3] = e.Modele.Nom
		if e.Modele.Fabricant != nil {
			ligne[2] = e.Modele.Fabricant.Nom
		}
		if e.Modele.Categorie != nil {
			ligne[4] = e.Modele.Categorie.Nom
		}
	}
	if e.Statut != nil {
		ligne[5] = e.Statut.Nom
	}
	if e.Etablissement != nil {
		ligne[6] = e.Etablissement.Nom
	}
	if e.Localisation != nil {
		ligne[7] = e.Localisation.Emplacement()
	}
	if e.DateAchat != nil {
		ligne[12] = e.DateAchat.Format("2006-01-02")
	}
	if e.DateGarantie != nil {
		ligne[13] = e.DateGarantie.Format("2006-01-02")
	}
	if e.Prix != nil {
		ligne[14] = e.Prix.StringFixed(2)
	}
	return ligne
}

// EquipementsXLSX génère un classeur Excel de l'inventaire
func (s *ExportService) EquipementsXLSX(equipements []models.Equipement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	feuille := "Inventaire"
	index, err := f.NewSheet(feuille)
	if err != nil {
		return nil, fmt.Errorf("erreur de création de la feuille: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	enTete, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("erreur de création du style: %w", err)
	}

	for i, titre := range colonnesExport {
		cellule, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(feuille, cellule, titre)
		f.SetCellStyle(feuille, cellule, cellule, enTete)
	}

	for ligne, e := range equipements {
		for col, valeur := range ligneExport(&e) {
			cellule, _ := excelize.CoordinatesToCellName(col+1, ligne+2)
			f.SetCellValue(feuille, cellule, valeur)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erreur d'écriture du classeur: %w", err)
	}
	return buf.Bytes(), nil
}

// EquipementsCSV génère un export CSV de l'inventaire
func (s *ExportService) EquipementsCSV(equipements []models.Equipement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(colonnesExport); err != nil {
		return nil, err
	}
	for _, e := range equipements {
		if err := w.Write(ligneExport(&e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EquipementsPDF génère un état PDF paysage de l'inventaire
func (s *ExportService) EquipementsPDF(equipements []models.Equipement) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr("Inventaire des équipements"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Généré le %s — %d équipements", time.Now().Format("02/01/2006 15:04"), len(equipements))))
	pdf.Ln(10)

	// Sous-ensemble de colonnes qui tient sur une page A4 paysage
	titres := []string{"Asset Tag", "Nom", "Fabricant", "Modèle", "Statut", "Établissement", "IP", "Prix"}
	largeurs := []float64{25, 55, 28, 50, 28, 40, 30, 21}

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, titre := range titres {
		pdf.CellFormat(largeurs[i], 7, tr(titre), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, e := range equipements {
		complet := ligneExport(&e)
		cellules := []string{complet[0], complet[1], complet[2], complet[3], complet[5], complet[6], complet[9], complet[14]}
		for i, valeur := range cellules {
			pdf.CellFormat(largeurs[i], 6, tr(valeur), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erreur de génération du PDF: %w", err)
	}
	return buf.Bytes(), nil
}
