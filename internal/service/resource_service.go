package service

import (
	"context"

	"teen-coach-be/internal/dto"
	"teen-coach-be/pkg/hotlines"
)

type IResourceService interface {
	Search(ctx context.Context, request *dto.SearchResourcesRequest) (*dto.SearchResourcesResponse, error)
	ListByCountry(ctx context.Context, country string) ([]dto.HotlineDTO, error)
}

type resourceService struct {
	directory *hotlines.Directory
}

func NewResourceService(directory *hotlines.Directory) IResourceService {
	return &resourceService{directory: directory}
}

func (rs *resourceService) Search(_ context.Context, request *dto.SearchResourcesRequest) (*dto.SearchResourcesResponse, error) {
	topK := request.TopK
	if topK <= 0 {
		topK = 5
	}

	res := rs.directory.ResourcesForUser(request.Query, request.Country, topK)
	return &dto.SearchResourcesResponse{
		Triggered: res.Triggered,
		Crisis:    res.Crisis,
		Matches:   toHotlineDTOs(res.Matches),
	}, nil
}

func (rs *resourceService) ListByCountry(_ context.Context, country string) ([]dto.HotlineDTO, error) {
	var entries []hotlines.Entry
	if country == "" {
		entries = rs.directory.Entries()
	} else {
		entries = rs.directory.FindByCountry(country)
	}

	out := make([]dto.HotlineDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToDTO(e, 0))
	}
	return out, nil
}

func toHotlineDTOs(matches []hotlines.ScoredEntry) []dto.HotlineDTO {
	if len(matches) == 0 {
		return nil
	}
	out := make([]dto.HotlineDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, entryToDTO(m.Entry, m.Score))
	}
	return out
}

func entryToDTO(e hotlines.Entry, score float64) dto.HotlineDTO {
	return dto.HotlineDTO{
		Id:      e.ID,
		Name:    e.Name,
		Country: e.Country,
		Phone:   e.Phone,
		SMS:     e.SMS,
		Website: e.Website,
		Notes:   e.Notes,
		Tags:    e.Tags,
		Score:   score,
	}
}
