/*
go-jointtrack measures the bend angle of body joints by observing ArUco
fiducial markers attached either side of each joint and logs a time series
of joint angles and marker orientations to a CSV file.

Markers are arranged in a linear chain.  For N joints there are N+2 marker
slots numbered 0..N+1, where slots i and i+2 are the arms of joint i and
slot i+1 is its vertex.  Each video frame the detected markers are projected
onto this chain, the joint angles are calculated from the marker positions
and, when the collection interval has elapsed, a row is written to the
output file.

Marker detection and pose estimation are handled by the detect subpackage
using OpenCV via GoCV, video input by the source subpackage.

See example code and usage in the example subdirectory.
*/
package jointtrack
