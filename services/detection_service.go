package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// DetectionService is the upstream classifier boundary: a photo goes in, a
// ranked candidate list comes out. The core never looks inside the model; it
// only consumes the scored candidates.
type DetectionService struct {
	client *rekognition.Client
	menu   *MenuService
}

func NewDetectionService(menu *MenuService) (*DetectionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &DetectionService{client: rekognition.NewFromConfig(cfg), menu: menu}, nil
}

type detectedLabel struct {
	name       string
	confidence float64 // 0..1
}

func (d *DetectionService) detectLabels(base64Img string) ([]detectedLabel, error) {
	idx := strings.Index(base64Img, ",")
	if !strings.HasPrefix(base64Img, "data:image") || idx < 0 {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := d.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(55),
	})
	if err != nil {
		return nil, err
	}

	var labels []detectedLabel
	for _, l := range out.Labels {
		labels = append(labels, detectedLabel{
			name:       aws.ToString(l.Name),
			confidence: float64(aws.ToFloat32(l.Confidence)) / 100.0,
		})
	}
	return labels, nil
}

// DetectDishes ranks the day's menu against the labels the classifier sees
// in the photo and returns up to three candidates with confidence scores.
func (d *DetectionService) DetectDishes(base64Img, location string, day time.Time) ([]models.DishCandidate, error) {
	labels, err := d.detectLabels(base64Img)
	if err != nil {
		return nil, err
	}

	items, err := d.menu.ListMenu(location, day)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no menu published for this location and day")
	}

	var candidates []models.DishCandidate
	for _, item := range items {
		score := matchScore(item, labels)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, models.DishCandidate{
			ID:               item.ID,
			Name:             item.Name,
			Category:         item.Category,
			NutrientsPer100g: item.Profile(),
			ConfidenceScore:  score,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ConfidenceScore > candidates[j].ConfidenceScore
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates, nil
}

// matchScore weights each label's confidence by how well it overlaps the
// dish name or category.
func matchScore(item models.MenuItem, labels []detectedLabel) float64 {
	name := strings.ToLower(item.Name)
	category := strings.ToLower(item.Category)

	best := 0.0
	for _, l := range labels {
		label := strings.ToLower(l.name)
		var w float64
		switch {
		case strings.Contains(name, label) || strings.Contains(label, name):
			w = 1.0
		case category != "" && strings.Contains(category, label):
			w = 0.6
		default:
			continue
		}
		if s := l.confidence * w; s > best {
			best = s
		}
	}
	return best
}
