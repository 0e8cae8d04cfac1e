// Package costmap provides a byte-valued occupancy grid anchored in the world
// frame, the map collaborator walked by the frontier search.
//
// Cost values follow the costmap_2d convention: 0 is free space, 254 is a
// lethal obstacle and 255 marks cells without information. Values in between
// are inflated costs and count as obstacles for classification purposes.
//
// Maps can be built in memory (New, NewFromData) or loaded from the
// map_server format: a YAML description plus a PGM or PNG image.
package costmap
