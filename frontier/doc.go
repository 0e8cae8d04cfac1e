// Package frontier detects and ranks exploration frontiers on an occupancy grid.
//
// A frontier is a contiguous cluster of unknown cells that touch free space.
// Search walks known space outward from the robot (4-connected), grows every
// frontier it meets into a region (8-connected), drops regions smaller than
// MinFrontierSize and ranks the rest with CostModel.
//
// Tracker keeps frontier identities stable across successive searches and
// holds a blacklist of goals the exploration loop gave up on.
package frontier
