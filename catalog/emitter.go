// Package catalog pushes itinerary-record metadata into a DataHub-style
// catalog over its REST ingestion endpoint: dataset properties, status
// tags and provenance lineage back to the Google Places API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lakshay-nasa/city-scout/models"
)

// GooglePlacesURN is the upstream source node in the lineage graph.
const GooglePlacesURN = "urn:li:dataset:(urn:li:dataPlatform:external,Google_Places_API,PROD)"

// DatasetURN addresses one itinerary record's dataset entity.
func DatasetURN(docID string) string {
	return fmt.Sprintf("urn:li:dataset:(urn:li:dataPlatform:mongodb,itinerary_%s,PROD)", docID)
}

// Proposal is one metadata change proposal.
type Proposal struct {
	EntityType string
	EntityURN  string
	ChangeType string
	AspectName string
	Aspect     interface{}
}

type Emitter struct {
	gms    string
	client *http.Client
}

func NewEmitter(gms string) *Emitter {
	return &Emitter{
		gms:    gms,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// wire shapes for the ingestProposal endpoint
type wireProposal struct {
	Proposal struct {
		EntityType string     `json:"entityType"`
		EntityURN  string     `json:"entityUrn"`
		ChangeType string     `json:"changeType"`
		AspectName string     `json:"aspectName"`
		Aspect     wireAspect `json:"aspect"`
	} `json:"proposal"`
}

type wireAspect struct {
	Value       string `json:"value"`
	ContentType string `json:"contentType"`
}

func (e *Emitter) emit(ctx context.Context, p Proposal) error {
	aspect, err := json.Marshal(p.Aspect)
	if err != nil {
		return fmt.Errorf("marshal aspect %s: %w", p.AspectName, err)
	}

	var wire wireProposal
	wire.Proposal.EntityType = p.EntityType
	wire.Proposal.EntityURN = p.EntityURN
	wire.Proposal.ChangeType = p.ChangeType
	wire.Proposal.AspectName = p.AspectName
	wire.Proposal.Aspect = wireAspect{Value: string(aspect), ContentType: "application/json"}

	body, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.gms+"/aspects?action=ingestProposal", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emit %s: %w", p.AspectName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("emit %s: catalog returned %s", p.AspectName, resp.Status)
	}
	return nil
}

type datasetProperties struct {
	Description      string            `json:"description"`
	CustomProperties map[string]string `json:"customProperties"`
}

type globalTags struct {
	Tags []tagAssociation `json:"tags"`
}

type tagAssociation struct {
	Tag string `json:"tag"`
}

type upstreamLineage struct {
	Upstreams []upstream `json:"upstreams"`
}

type upstream struct {
	Dataset string `json:"dataset"`
	Type    string `json:"type"`
}

// EmitUpstreamSource creates the Google Places API entity so provenance
// shows up in the lineage UI before the first record arrives.
func (e *Emitter) EmitUpstreamSource(ctx context.Context) error {
	return e.emit(ctx, Proposal{
		EntityType: "dataset",
		EntityURN:  GooglePlacesURN,
		ChangeType: "UPSERT",
		AspectName: "datasetProperties",
		Aspect: datasetProperties{
			Description: "External Google Places API providing geospatial landmark data.",
			CustomProperties: map[string]string{
				"provider":  "Google",
				"interface": "REST API",
			},
		},
	})
}

// EmitRecord pushes the full aspect set for one itinerary record. The
// status tag flips from Status:Draft to Status:Exported when the record's
// terminal transition comes through.
func (e *Emitter) EmitRecord(ctx context.Context, docID string, rec models.ItineraryRecord) error {
	urn := DatasetURN(docID)
	exported := rec.Status == models.StatusExported

	lifecycleState := "Staging"
	statusTag := "urn:li:tag:Status:Draft"
	if exported {
		lifecycleState = "Production"
		statusTag = "urn:li:tag:Status:Exported"
	}

	userName := rec.User.Name
	if userName == "" {
		userName = "Unknown User"
	}

	proposals := []Proposal{
		{
			EntityType: "dataset",
			EntityURN:  urn,
			ChangeType: "UPSERT",
			AspectName: "datasetProperties",
			Aspect: datasetProperties{
				Description: fmt.Sprintf("Travel itinerary created by %s.", userName),
				CustomProperties: map[string]string{
					"doc_id":           docID,
					"user":             userName,
					"location_count":   strconv.Itoa(len(rec.Locations)),
					"tabular_ml_ready": "true",
					"source":           "CityScout_App",
					"lifecycle_state":  lifecycleState,
				},
			},
		},
		{
			EntityType: "dataset",
			EntityURN:  urn,
			ChangeType: "UPSERT",
			AspectName: "globalTags",
			Aspect: globalTags{
				Tags: []tagAssociation{
					{Tag: statusTag},
					{Tag: "urn:li:tag:Creator_Content"},
					{Tag: "urn:li:tag:AI_Ready_Tabular"},
					{Tag: "urn:li:tag:Geospatial_PII"},
				},
			},
		},
		{
			EntityType: "dataset",
			EntityURN:  urn,
			ChangeType: "UPSERT",
			AspectName: "upstreamLineage",
			Aspect: upstreamLineage{
				Upstreams: []upstream{
					{Dataset: GooglePlacesURN, Type: "TRANSFORMED"},
				},
			},
		},
	}

	for _, p := range proposals {
		if err := e.emit(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
