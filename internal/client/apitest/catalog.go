package apitest

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
)

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type productIn struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*product{}
	for _, id := range sortedKeys(s.products) {
		out = append(out, s.products[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in productIn
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Code == in.Code {
			writeError(w, http.StatusConflict, "Product code already exists")
			return
		}
	}
	s.nextID++
	p := &product{ID: s.nextID, Code: in.Code, Name: in.Name, Value: in.Value, UnitOfMeasure: in.UnitOfMeasure}
	s.products[p.ID] = p
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in productIn
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	p.Code, p.Name, p.Value, p.UnitOfMeasure = in.Code, in.Name, in.Value, in.UnitOfMeasure
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	delete(s.products, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getMaterials(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	out := p.BOM
	if out == nil {
		out = []bomLine{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) putMaterials(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in []struct {
		RawMaterialID    json.Number `json:"rawMaterialId"`
		QuantityRequired float64     `json:"quantityRequired"`
	}
	if !decode(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	bom := make([]bomLine, 0, len(in))
	for _, it := range in {
		mid, err := it.RawMaterialID.Int64()
		if err != nil {
			writeError(w, http.StatusBadRequest, "rawMaterialId must be numeric")
			return
		}
		m, ok := s.materials[mid]
		if !ok {
			writeError(w, http.StatusBadRequest, "Raw material "+it.RawMaterialID.String()+" not found")
			return
		}
		bom = append(bom, bomLine{RawMaterialID: mid, RawMaterialName: m.Name, QuantityNeeded: it.QuantityRequired})
	}
	p.BOM = bom
	writeJSON(w, http.StatusOK, bom)
}

type materialIn struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	StockQuantity float64 `json:"stockQuantity"`
}

func (s *Server) listMaterials(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*material{}
	for _, id := range sortedKeys(s.materials) {
		out = append(out, s.materials[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createMaterial(w http.ResponseWriter, r *http.Request) {
	var in materialIn
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m := &material{ID: s.nextID, Code: in.Code, Name: in.Name, StockQuantity: in.StockQuantity}
	s.materials[m.ID] = m
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in materialIn
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Raw material not found")
		return
	}
	m.Code, m.Name, m.StockQuantity = in.Code, in.Name, in.StockQuantity
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.materials[id]; !ok {
		writeError(w, http.StatusNotFound, "Raw material not found")
		return
	}
	delete(s.materials, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUnits(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*unit{}
	for _, id := range sortedKeys(s.units) {
		out = append(out, s.units[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Unit of measure not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createUnit(w http.ResponseWriter, r *http.Request) {
	var in unit
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	in.ID = s.nextID
	s.units[in.ID] = &in
	writeJSON(w, http.StatusCreated, &in)
}

func (s *Server) updateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in unit
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Unit of measure not found")
		return
	}
	u.Code, u.Name = in.Code, in.Name
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[id]; !ok {
		writeError(w, http.StatusNotFound, "Unit of measure not found")
		return
	}
	delete(s.units, id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSuggestions computes, per product, how many units the current stock
// allows, unless a canned answer was set with SetSuggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suggestions != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(s.suggestions)
		return
	}

	type suggestion struct {
		ProductID   int64   `json:"productId"`
		ProductCode string  `json:"productCode"`
		ProductName string  `json:"productName"`
		Quantity    int64   `json:"quantity"`
		UnitValue   float64 `json:"unitValue"`
		TotalValue  float64 `json:"totalValue"`
	}
	out := []suggestion{}
	var total float64
	for _, id := range sortedKeys(s.products) {
		p := s.products[id]
		qty := s.producible(p)
		if qty == 0 {
			continue
		}
		line := suggestion{p.ID, p.Code, p.Name, qty, p.Value, float64(qty) * p.Value}
		total += line.TotalValue
		out = append(out, line)
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out, "totalValue": total})
}

func (s *Server) producible(p *product) int64 {
	if len(p.BOM) == 0 {
		return 0
	}
	best := int64(math.MaxInt64)
	for _, line := range p.BOM {
		m, ok := s.materials[line.RawMaterialID]
		if !ok || line.QuantityNeeded <= 0 {
			return 0
		}
		if n := int64(m.StockQuantity / line.QuantityNeeded); n < best {
			best = n
		}
	}
	return best
}

// SetSuggestions makes GET /production/suggestions answer raw verbatim.
func (s *Server) SetSuggestions(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = json.RawMessage(raw)
}
