package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func getJobByID(jobID primitive.ObjectID) (*AnalysisJob, error) {
	var job AnalysisJob
	err := jobsCollection.FindOne(context.Background(), bson.M{"_id": jobID}).Decode(&job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func updateJobInDB(jobID primitive.ObjectID, updateData bson.M) error {
	_, err := jobsCollection.UpdateOne(
		context.Background(),
		bson.M{"_id": jobID},
		bson.M{"$set": updateData},
	)
	return err
}

func getGenerationByID(genID primitive.ObjectID) (*GenerationJob, error) {
	var gen GenerationJob
	err := generationsCollection.FindOne(context.Background(), bson.M{"_id": genID}).Decode(&gen)
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

func updateGenerationInDB(genID primitive.ObjectID, updateData bson.M) error {
	_, err := generationsCollection.UpdateOne(
		context.Background(),
		bson.M{"_id": genID},
		bson.M{"$set": updateData},
	)
	return err
}

func getBatchByID(batchID primitive.ObjectID) (*BatchJob, error) {
	var batch BatchJob
	err := batchesCollection.FindOne(context.Background(), bson.M{"_id": batchID}).Decode(&batch)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
