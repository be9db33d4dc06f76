/*
Package builder turns the format-agnostic configuration model into a live
circuit.Document.

The construction is a multi-phase process:

 1. Ordering: boards are sorted so that every board is built after the
    boards its subcircuit components reference. A board that references
    itself, directly or through other boards, is rejected.

 2. Component creation: each component block is resolved against the
    registry by its exact (category, name). Its properties are the manifest
    defaults overlaid with the attributes written on the block, and its
    ports come from the kind's Go behavior. Components without coordinates
    are placed on the first free grid cell.

 3. Wiring: every wire block joins the referenced ports onto one link.
    Wires sharing a port are merged, so a net may be declared in pieces.

The result keeps the boards in declaration order.
*/
package builder
