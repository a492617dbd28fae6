package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// processBatch runs the analysis pipeline over every stored path in the
// batch. A failed item records its error and the batch keeps going.
func processBatch(batchID primitive.ObjectID, items []BatchItem, ptdOptimized bool) {
	updateBatchStatus(batchID, StatusProcessing)

	completed, failed := runBatchItems(items, ptdOptimized, processBatchItem)

	now := time.Now()
	err := updateBatchInDB(batchID, bson.M{
		"status":       StatusCompleted,
		"completed":    completed,
		"failed":       failed,
		"items":        items,
		"completed_at": &now,
	})
	if err != nil {
		log.Printf("Warning: failed to finalize batch %s: %v", batchID.Hex(), err)
	}

	log.Printf("✅ Batch %s finished: %d completed, %d failed", batchID.Hex(), completed, failed)
}

// runBatchItems fans the items out in sequential chunks of
// batchConcurrency so no more than that many analyses are ever in
// flight, then tallies the outcomes. Items already failed at submission
// (missing or rejected path) are left as-is, and a panic in one item
// must not take down the batch loop.
func runBatchItems(items []BatchItem, ptdOptimized bool, process func(*BatchItem, bool)) (completed, failed int) {
	for chunkStart := 0; chunkStart < len(items); chunkStart += batchConcurrency {
		chunkEnd := chunkStart + batchConcurrency
		if chunkEnd > len(items) {
			chunkEnd = len(items)
		}

		var wg sync.WaitGroup
		for i := chunkStart; i < chunkEnd; i++ {
			wg.Add(1)
			go func(item *BatchItem) {
				defer wg.Done()
				if item.Status == StatusFailed {
					return
				}
				defer func() {
					if r := recover(); r != nil {
						item.Status = StatusFailed
						item.ErrorMessage = fmt.Sprintf("panic: %v", r)
					}
				}()
				process(item, ptdOptimized)
			}(&items[i])
		}
		wg.Wait()
	}

	for _, item := range items {
		switch item.Status {
		case StatusCompleted:
			completed++
		case StatusFailed:
			failed++
		}
	}
	return completed, failed
}

// processBatchItem runs one stored video through the same job flow the
// upload endpoint uses and reflects the job outcome on the item.
func processBatchItem(item *BatchItem, ptdOptimized bool) {
	job := &AnalysisJob{
		OriginalName: item.StoredPath,
		StoredPath:   item.StoredPath,
		Status:       StatusProcessing,
		PTDOptimized: ptdOptimized,
		CreatedAt:    time.Now(),
	}
	result, err := jobsCollection.InsertOne(context.Background(), job)
	if err != nil {
		item.Status = StatusFailed
		item.ErrorMessage = fmt.Sprintf("creating job record: %v", err)
		return
	}
	job.ID = result.InsertedID.(primitive.ObjectID)
	item.JobID = job.ID

	processAnalysis(job.ID, item.StoredPath, "", ptdOptimized)

	finished, err := getJobByID(job.ID)
	if err != nil {
		item.Status = StatusFailed
		item.ErrorMessage = fmt.Sprintf("reading job outcome: %v", err)
		return
	}

	item.Status = finished.Status
	item.ErrorMessage = finished.ErrorMessage
}

func updateBatchStatus(batchID primitive.ObjectID, status string) {
	if err := updateBatchInDB(batchID, bson.M{"status": status}); err != nil {
		log.Printf("Warning: failed to update batch status to %s: %v", status, err)
	}
}

func updateBatchInDB(batchID primitive.ObjectID, updateData bson.M) error {
	_, err := batchesCollection.UpdateOne(
		context.Background(),
		bson.M{"_id": batchID},
		bson.M{"$set": updateData},
	)
	return err
}
