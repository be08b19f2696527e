package handler

import (
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
)

// BulkResponse lists each bucket of a bulk request outcome. Dimensions are
// sorted so identical outcomes serialize identically.
type BulkResponse struct {
	InvalidDimensions         []models.DataDimension `json:"invalidDimensions"`
	ExistingRequestDimensions []models.DataDimension `json:"existingRequestDimensions"`
	ExistingDatasetDimensions []models.DataDimension `json:"existingDatasetDimensions"`
	AcceptedRequests          []AcceptedRequest      `json:"acceptedRequests"`
}

type AcceptedRequest struct {
	models.DataDimension
	RequestID id.RequestID `json:"requestId"`
}

func toBulkResponse(o *models.BulkRequestOutcome) BulkResponse {
	accepted := o.Accepted.Slice()
	resp := BulkResponse{
		InvalidDimensions:         o.Invalid.Slice(),
		ExistingRequestDimensions: o.ExistingRequests.Slice(),
		ExistingDatasetDimensions: o.ExistingDatasets.Slice(),
		AcceptedRequests:          make([]AcceptedRequest, 0, len(accepted)),
	}
	for _, d := range accepted {
		resp.AcceptedRequests = append(resp.AcceptedRequests, AcceptedRequest{DataDimension: d, RequestID: o.AcceptedRequestIDs[d]})
	}
	return resp
}
